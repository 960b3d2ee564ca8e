package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gobeam/internal/deform"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
	"github.com/alexiusacademia/gobeam/internal/singularity"
)

// field is an uncoupled set of equilibrium equations and the reaction
// components that enter them.
type field int

const (
	axialField   field = iota // ΣFx
	bendingField              // ΣFy, ΣMz about x = 0
	torsionField              // ΣTx
)

var fields = []field{axialField, bendingField, torsionField}

func (f field) String() string {
	switch f {
	case axialField:
		return "axial"
	case bendingField:
		return "bending"
	}
	return "torsion"
}

func (f field) owns(d load.DOF) bool {
	switch f {
	case axialField:
		return d == load.Axial
	case bendingField:
		return d == load.Transverse || d == load.Rotation
	}
	return d == load.Twist
}

func (f field) equations() int {
	if f == bendingField {
		return 2
	}
	return 1
}

// stable reports whether the field must be restrained even when its applied
// resultant vanishes. A beam must always be stable in bending; a shaft with
// no torque needs no twist restraint.
func (f field) stable() bool { return f == bendingField }

// column is the contribution of a unit reaction component to the equations.
func (f field) column(u Unknown) []float64 {
	switch u.DOF {
	case load.Transverse:
		return []float64{1, u.Position}
	case load.Rotation:
		return []float64{0, 1}
	}
	return []float64{1}
}

func (f field) matrix(us []Unknown) *mat.Dense {
	a := mat.NewDense(f.equations(), max(len(us), 1), nil)
	for j, u := range us {
		for i, v := range f.column(u) {
			a.Set(i, j, v)
		}
	}
	return a
}

// applied returns the load resultants entering the field's equations.
func (f field) applied(loads []load.Load) []float64 {
	out := make([]float64, f.equations())
	for _, l := range loads {
		fx, fy, mz, tx := l.Resultant()
		switch f {
		case axialField:
			out[0] += fx
		case bendingField:
			out[0] += fy
			out[1] += mz
		case torsionField:
			out[0] += tx
		}
	}
	return out
}

// displacer measures the displacement conjugate to a reaction component.
type displacer func(u Unknown) float64

// displacements integrates the field under loads with only the restrained
// components held.
func (f field) displacements(m *member.Member, loads []load.Load, restrained []Unknown) (displacer, error) {
	extra := make([]float64, 0, len(restrained))
	var c deform.Constraints
	for _, u := range restrained {
		extra = append(extra, u.Position)
		c.Add(u.Position, u.DOF)
	}
	fs := singularity.Build(m.Length(), loads, extra...)
	spans := m.Spans()

	switch f {
	case axialField:
		u, err := deform.Stretch(fs.Axial, spans, c.Axial)
		if err != nil {
			return nil, err
		}
		return func(k Unknown) float64 { return u.At(k.Position) }, nil
	case torsionField:
		phi, err := deform.Twist(fs.Torque, spans, c.Twist)
		if err != nil {
			return nil, err
		}
		return func(k Unknown) float64 { return phi.At(k.Position) }, nil
	}
	b, err := deform.Bend(fs.Moment, fs.Shear, spans, c)
	if err != nil {
		return nil, err
	}
	return func(k Unknown) float64 {
		if k.DOF == load.Rotation {
			return b.Slope.At(k.Position)
		}
		return b.Deflection.At(k.Position)
	}, nil
}
