package nscp

import (
	"fmt"
	"math"
	"strings"
)

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Poisson's ratios used for G = E / 2(1 + ν)
	NuSteel    = 0.30
	NuConcrete = 0.20
)

// Ec calculates the modulus of elasticity of normal-weight concrete
// NSCP 2015 Section 419.2.2.1
func Ec(fc float64) float64 {
	// Ec = 4700√f'c
	return 4700 * math.Sqrt(fc)
}

// ModulusOfRupture calculates fr for normal-weight concrete
// NSCP 2015 Section 419.2.3.1
func ModulusOfRupture(fc float64) float64 {
	// fr = 0.62λ√f'c with λ = 1.0
	return 0.62 * math.Sqrt(fc)
}

// Material holds elastic constants and strengths in MPa.
type Material struct {
	Name string
	E    float64
	Nu   float64

	// Yield strength of ductile materials
	Fy float64

	// Ultimate tensile and compressive strengths of brittle materials
	Ft float64
	Fc float64
}

// G returns the shear modulus.
func (m Material) G() float64 {
	return m.E / (2 * (1 + m.Nu))
}

// Ductile reports whether the von Mises criterion applies.
func (m Material) Ductile() bool { return m.Fy > 0 }

// Steel returns a structural steel with the given yield strength.
func Steel(fy float64) Material {
	return Material{Name: fmt.Sprintf("steel fy=%g", fy), E: Es, Nu: NuSteel, Fy: fy}
}

// Concrete returns normal-weight concrete of strength f'c.
func Concrete(fc float64) Material {
	return Material{
		Name: fmt.Sprintf("concrete f'c=%g", fc),
		E:    Ec(fc),
		Nu:   NuConcrete,
		Ft:   ModulusOfRupture(fc),
		Fc:   fc,
	}
}

// Preset returns a named material: "A36", "A572" (grade 50), "steel" (A36)
// or "concrete" with the given f'c.
func Preset(name string, fc float64) (Material, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a36", "steel":
		return Steel(250), nil
	case "a572", "a572-50":
		return Steel(345), nil
	case "concrete":
		if fc <= 0 {
			fc = 21
		}
		return Concrete(fc), nil
	}
	return Material{}, fmt.Errorf("unknown material %q", name)
}
