// Package singularity assembles internal force functions from loads using
// Macaulay brackets.
package singularity

import (
	"math"

	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/poly"
)

// Fields are the internal force functions of a member.
type Fields struct {
	// Axial is the normal force N(x), tension positive.
	Axial poly.Piecewise
	// Shear is V(x), the sum of upward forces left of the cut.
	Shear poly.Piecewise
	// Moment is M(x) with dM/dx = V.
	Moment poly.Piecewise
	// Torque is the internal twisting moment T(x).
	Torque poly.Piecewise
	// Intensity is the distributed load q(x) = dV/dx.
	Intensity poly.Piecewise
}

// Breaks returns the sorted, de-duplicated segment boundaries for a member of
// the given length: both ends, every load start and stop, and extra.
func Breaks(length float64, loads []load.Load, extra ...float64) []float64 {
	xs := []float64{0, length}
	for _, l := range loads {
		xs = append(xs, l.Positions()...)
	}
	xs = append(xs, extra...)
	for i, x := range xs {
		xs[i] = math.Min(math.Max(x, 0), length)
	}
	return poly.Unique(xs, 1e-12*math.Max(1, length))
}

// Build sums the contributions of every load, applied and reaction alike.
// extra adds boundaries such as support positions or stepped-section joints.
func Build(length float64, loads []load.Load, extra ...float64) Fields {
	breaks := Breaks(length, loads, extra...)

	var t load.Terms
	for _, l := range loads {
		l.Contribute(&t)
	}

	shear := poly.FromTerms(breaks, t.Shear)
	moment := append(poly.IntegrateTerms(t.Shear), t.Moment...)
	return Fields{
		Axial:     poly.FromTerms(breaks, t.Axial),
		Shear:     shear,
		Moment:    poly.FromTerms(breaks, moment),
		Torque:    poly.FromTerms(breaks, t.Torque),
		Intensity: shear.Derivative(),
	}
}
