package stress

import "math"

// Plane is a plane stress state on an element aligned with x and y.
type Plane struct {
	SX, SY, TXY float64
}

// Rotate returns the stresses on an element rotated theta radians
// counter-clockwise.
func (p Plane) Rotate(theta float64) Plane {
	return Plane{
		SX:  p.normal(theta),
		SY:  p.normal(theta + math.Pi/2),
		TXY: p.shear(theta),
	}
}

func (p Plane) normal(theta float64) float64 {
	return (p.SX+p.SY)/2 + (p.SX-p.SY)/2*math.Cos(2*theta) + p.TXY*math.Sin(2*theta)
}

func (p Plane) shear(theta float64) float64 {
	return -(p.SX-p.SY)/2*math.Sin(2*theta) + p.TXY*math.Cos(2*theta)
}

// Principal returns σ1 ≥ σ2 and the angle from x to the direction of σ1.
func (p Plane) Principal() (s1, s2, theta float64) {
	ta := math.Atan2(p.TXY, (p.SX-p.SY)/2) / 2
	tb := ta + math.Pi/2
	sa, sb := p.normal(ta), p.normal(tb)
	if sa >= sb {
		return sa, sb, ta
	}
	return sb, sa, tb
}

// MaxInPlaneShear returns the maximum in-plane shear stress, the normal
// stress on its planes and the rotation angle of that element.
func (p Plane) MaxInPlaneShear() (tau, sigma, theta float64) {
	theta = math.Atan2(-(p.SX-p.SY)/2, p.TXY) / 2
	return p.shear(theta), p.normal(theta), theta
}

// AbsMaxShear returns the absolute maximum shear stress including the
// out-of-plane direction, where the third principal stress is zero.
func (p Plane) AbsMaxShear() float64 {
	s1, s2, _ := p.Principal()
	if s1*s2 > 0 {
		return math.Max(math.Abs(s1), math.Abs(s2)) / 2
	}
	return (s1 - s2) / 2
}

// Circle is Mohr's circle of a plane stress state.
type Circle struct {
	Center, Radius float64
}

// Mohr returns the centre on the σ axis and the radius.
func (p Plane) Mohr() Circle {
	return Circle{
		Center: (p.SX + p.SY) / 2,
		Radius: math.Hypot((p.SX-p.SY)/2, p.TXY),
	}
}

// VonMises returns the distortion-energy equivalent stress.
func (p Plane) VonMises() float64 {
	s1, s2, _ := p.Principal()
	return math.Sqrt(s1*s1 - s1*s2 + s2*s2)
}

// VonMisesCheck reports whether the von Mises stress stays below the yield
// strength, with the utilisation ratio.
func VonMisesCheck(p Plane, yield float64) (ratio float64, ok bool) {
	ratio = p.VonMises() / math.Abs(yield)
	return ratio, ratio < 1
}

// MohrCheck applies Mohr's failure criterion for brittle materials with
// ultimate tensile and compressive strengths, both given as magnitudes. A
// zero compressive strength means equal to the tensile one.
func MohrCheck(p Plane, tension, compression float64) (ratio float64, ok bool) {
	st := math.Abs(tension)
	sc := math.Abs(compression)
	if sc == 0 {
		sc = st
	}
	s1, s2, _ := p.Principal()
	switch {
	case s1 >= 0 && s2 >= 0:
		ratio = math.Max(s1, s2) / st
	case s1 <= 0 && s2 <= 0:
		ratio = -math.Min(s1, s2) / sc
	default:
		// σ1 in tension, σ2 in compression
		ratio = s1/st - s2/sc
	}
	return ratio, ratio < 1
}
