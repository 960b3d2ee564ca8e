// Package stress maps internal forces to stresses on a cross-section and
// reduces plane stress states to principal values.
package stress

import (
	"math"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/section"
)

// Forces are the internal actions at one position along the member.
type Forces struct {
	N, V, M, T float64
}

// Stress is the normal and shear stress at a point.
type Stress struct {
	Sigma float64
	Tau   float64
}

// Plane returns the plane stress element of the point, with σx along the
// member axis and no transverse normal stress.
func (s Stress) Plane() Plane {
	return Plane{SX: s.Sigma, TXY: s.Tau}
}

// Evaluator holds the section data needed at one position. I, J and A may
// differ from the shape's own values on stepped members.
type Evaluator struct {
	Shape section.Shape
	I     float64
	J     float64
	A     float64
}

func (e Evaluator) query(op string) error {
	if e.Shape == nil {
		return errs.New(op, errs.ErrInvalidQuery, "member has no cross-section")
	}
	return nil
}

// AtY returns σ = N/A − M·y/I and τ = V·Q(y)/(I·t(y)) at height y above the
// neutral axis. Bending is taken about the horizontal centroidal axis only,
// so polygons whose principal axes are rotated (Ixy ≠ 0) are refused.
func (e Evaluator) AtY(f Forces, y float64) (Stress, error) {
	const op = "stress.AtY"
	if err := e.query(op); err != nil {
		return Stress{}, err
	}
	if p, ok := e.Shape.(*section.Polygon); ok {
		ixy := p.ProductOfInertia()
		if math.Abs(ixy) > 1e-9*math.Sqrt(p.Inertia()*(p.PolarInertia()-p.Inertia())) {
			return Stress{}, errs.New(op, errs.ErrInvalidQuery, "%s has Ixy = %g; unsymmetric bending is not supported", p.Name(), ixy)
		}
	}
	bottom, top := e.Shape.Extent()
	eps := 1e-9 * math.Max(1, top-bottom)
	if math.IsNaN(y) || y < bottom-eps || y > top+eps {
		return Stress{}, errs.New(op, errs.ErrInvalidQuery, "y = %g outside section [%g, %g]", y, bottom, top)
	}
	y = math.Min(math.Max(y, bottom), top)

	var s Stress
	s.Sigma = -f.M * y / e.I
	if e.A > 0 {
		s.Sigma += f.N / e.A
	}
	if q, t := e.Shape.FirstMoment(y), e.Shape.Width(y); q > 0 && t > 0 {
		s.Tau = f.V * q / (e.I * t)
	}
	return s, nil
}

// AtR returns the torsional shear stress τ = T·r/J at radius r of a round
// section.
func (e Evaluator) AtR(f Forces, r float64) (Stress, error) {
	const op = "stress.AtR"
	if err := e.query(op); err != nil {
		return Stress{}, err
	}
	if !e.Shape.Circular() {
		return Stress{}, errs.New(op, errs.ErrInvalidQuery, "torsion stress needs a round section, got %s", e.Shape.Name())
	}
	inner := 0.0
	if a, ok := e.Shape.(*section.Annulus); ok {
		inner = a.Inner
	}
	outer := e.Shape.MaxRadius()
	eps := 1e-9 * math.Max(1, outer)
	if math.IsNaN(r) || r < inner-eps || r > outer+eps {
		return Stress{}, errs.New(op, errs.ErrInvalidQuery, "r = %g outside section [%g, %g]", r, inner, outer)
	}
	if e.J <= 0 {
		return Stress{}, errs.New(op, errs.ErrInvalidQuery, "member has no torsion constant")
	}
	return Stress{Tau: f.T * r / e.J}, nil
}
