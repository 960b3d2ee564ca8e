// Package load holds the loads and supports applied to a member.
//
// Loads are a closed set of variants discriminated by Kind. Each variant
// knows its resultant and its singularity-function contribution to the
// internal force fields; nothing else in the engine switches on Kind.
package load

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/poly"
)

// Kind discriminates load variants.
type Kind int

const (
	PointForce Kind = iota
	PointMoment
	PointTorque
	Distributed
)

func (k Kind) String() string {
	switch k {
	case PointForce:
		return "point force"
	case PointMoment:
		return "point moment"
	case PointTorque:
		return "point torque"
	case Distributed:
		return "distributed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Load is an applied action on the member. Upward forces, counter-clockwise
// moments and right-hand torques about +x are positive; distributed
// intensities are upward-positive force per length.
type Load struct {
	Kind Kind

	// Position of point loads.
	Position float64

	// Magnitude of a point force, moment or torque.
	Magnitude float64

	// Angle of a point force in degrees, counter-clockwise from +x.
	Angle float64

	// Distributed loads act over [Start, End] varying linearly from
	// StartIntensity to EndIntensity. Order 0 is uniform.
	Start, End                   float64
	StartIntensity, EndIntensity float64
	Order                        int

	// Case tags the load for combinations, e.g. "D" or "L". Empty means dead.
	Case string
}

// Force returns a vertical point force fy at x.
func Force(x, fy float64) Load {
	return Load{Kind: PointForce, Position: x, Magnitude: fy, Angle: 90}
}

// AngledForce returns a point force of the given magnitude acting at angle
// degrees from the +x axis.
func AngledForce(x, magnitude, angle float64) Load {
	return Load{Kind: PointForce, Position: x, Magnitude: magnitude, Angle: angle}
}

// Moment returns a point couple at x, counter-clockwise positive.
func Moment(x, mz float64) Load {
	return Load{Kind: PointMoment, Position: x, Magnitude: mz}
}

// Torque returns a point torque at x about the member axis.
func Torque(x, t float64) Load {
	return Load{Kind: PointTorque, Position: x, Magnitude: t}
}

// Uniform returns a uniform distributed load q over [a, b].
func Uniform(a, b, q float64) Load {
	return Load{Kind: Distributed, Start: a, End: b, StartIntensity: q, EndIntensity: q}
}

// Linear returns a linearly varying distributed load over [a, b].
func Linear(a, b, qa, qb float64) Load {
	return Load{Kind: Distributed, Start: a, End: b, StartIntensity: qa, EndIntensity: qb, Order: 1}
}

// Components returns the x and y components of a point force. Components
// below 1e-12 of the magnitude are snapped to zero so that vertical forces
// do not leak into the axial field.
func (l Load) Components() (fx, fy float64) {
	if l.Kind != PointForce {
		return 0, 0
	}
	rad := l.Angle * math.Pi / 180
	fx, fy = l.Magnitude*math.Cos(rad), l.Magnitude*math.Sin(rad)
	eps := 1e-12 * math.Abs(l.Magnitude)
	if math.Abs(fx) < eps {
		fx = 0
	}
	if math.Abs(fy) < eps {
		fy = 0
	}
	return fx, fy
}

// Positions returns the points where the load starts or stops acting.
func (l Load) Positions() []float64 {
	if l.Kind == Distributed {
		return []float64{l.Start, l.End}
	}
	return []float64{l.Position}
}

// Scale returns the load with every magnitude multiplied by k.
func (l Load) Scale(k float64) Load {
	l.Magnitude *= k
	l.StartIntensity *= k
	l.EndIntensity *= k
	return l
}

// Validate checks the load against a member of the given length.
func (l Load) Validate(length float64) error {
	const op = "load.Validate"
	eps := 1e-12 * math.Max(1, length)
	in := func(x float64) bool { return x >= -eps && x <= length+eps }
	finite := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}

	switch l.Kind {
	case PointForce, PointMoment, PointTorque:
		if !finite(l.Position) || !in(l.Position) {
			return errs.New(op, errs.ErrInvalidPosition, "%s at %g outside [0, %g]", l.Kind, l.Position, length)
		}
		if !finite(l.Magnitude, l.Angle) {
			return errs.New(op, errs.ErrInvalidGeometry, "%s at %g has a non-finite magnitude", l.Kind, l.Position)
		}
	case Distributed:
		if !finite(l.Start, l.End) || !in(l.Start) || !in(l.End) {
			return errs.New(op, errs.ErrInvalidPosition, "distributed load [%g, %g] outside [0, %g]", l.Start, l.End, length)
		}
		if l.Start >= l.End {
			return errs.New(op, errs.ErrInvalidPosition, "distributed load start %g must precede end %g", l.Start, l.End)
		}
		if !finite(l.StartIntensity, l.EndIntensity) {
			return errs.New(op, errs.ErrInvalidGeometry, "distributed load has a non-finite intensity")
		}
		switch l.Order {
		case 0:
			if l.StartIntensity != l.EndIntensity {
				return errs.New(op, errs.ErrInvalidGeometry, "uniform load needs equal intensities, got %g and %g",
					l.StartIntensity, l.EndIntensity)
			}
		case 1:
		default:
			return errs.New(op, errs.ErrInvalidGeometry, "distributed load order %d not supported", l.Order)
		}
	default:
		return errs.New(op, errs.ErrInvalidGeometry, "unknown load kind %d", int(l.Kind))
	}
	return nil
}

// Resultant returns the net x force, y force, moment about x = 0 and torque.
func (l Load) Resultant() (fx, fy, mz, tx float64) {
	switch l.Kind {
	case PointForce:
		fx, fy = l.Components()
		mz = fy * l.Position
	case PointMoment:
		mz = l.Magnitude
	case PointTorque:
		tx = l.Magnitude
	case Distributed:
		a, b := l.Start, l.End
		qa, qb := l.StartIntensity, l.EndIntensity
		fy = (qa + qb) * (b - a) / 2
		mz = (b - a) / 6 * (qa*(2*a+b) + qb*(a+2*b))
	}
	return fx, fy, mz, tx
}

// Terms collects singularity terms per internal field. Moment holds only the
// direct jumps from couples; the builder adds the integral of Shear.
type Terms struct {
	Axial  []poly.Term
	Shear  []poly.Term
	Moment []poly.Term
	Torque []poly.Term
}

// Contribute appends the load's singularity terms.
func (l Load) Contribute(t *Terms) {
	switch l.Kind {
	case PointForce:
		fx, fy := l.Components()
		if fy != 0 {
			t.Shear = append(t.Shear, poly.Term{At: l.Position, Coef: fy})
		}
		if fx != 0 {
			t.Axial = append(t.Axial, poly.Term{At: l.Position, Coef: -fx})
		}
	case PointMoment:
		t.Moment = append(t.Moment, poly.Term{At: l.Position, Coef: -l.Magnitude})
	case PointTorque:
		t.Torque = append(t.Torque, poly.Term{At: l.Position, Coef: -l.Magnitude})
	case Distributed:
		a, b := l.Start, l.End
		qa, qb := l.StartIntensity, l.EndIntensity
		k := (qb - qa) / (b - a)
		t.Shear = append(t.Shear,
			poly.Term{At: a, Power: 1, Coef: qa},
			poly.Term{At: b, Power: 1, Coef: -qb},
		)
		if k != 0 {
			t.Shear = append(t.Shear,
				poly.Term{At: a, Power: 2, Coef: k / 2},
				poly.Term{At: b, Power: 2, Coef: -k / 2},
			)
		}
	}
}

// Intensity returns the distributed intensity q(x) of the load, right-continuous.
func (l Load) Intensity(x float64) float64 {
	if l.Kind != Distributed || x < l.Start || x >= l.End {
		return 0
	}
	return l.StartIntensity + (l.EndIntensity-l.StartIntensity)*(x-l.Start)/(l.End-l.Start)
}

func (l Load) String() string {
	switch l.Kind {
	case PointForce:
		return fmt.Sprintf("force %g @ %g° at x=%g", l.Magnitude, l.Angle, l.Position)
	case PointMoment:
		return fmt.Sprintf("moment %g at x=%g", l.Magnitude, l.Position)
	case PointTorque:
		return fmt.Sprintf("torque %g at x=%g", l.Magnitude, l.Position)
	case Distributed:
		return fmt.Sprintf("distributed %g→%g on [%g, %g]", l.StartIntensity, l.EndIntensity, l.Start, l.End)
	}
	return l.Kind.String()
}
