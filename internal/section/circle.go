package section

import "math"

// Circle is a solid round section.
type Circle struct {
	Radius float64
}

// NewCircle returns a solid circle of radius r.
func NewCircle(r float64) (*Circle, error) {
	if err := positive("section.NewCircle", map[string]float64{"radius": r}); err != nil {
		return nil, err
	}
	return &Circle{Radius: r}, nil
}

func (c *Circle) Name() string                  { return "circle" }
func (c *Circle) Area() float64                 { return math.Pi * c.Radius * c.Radius }
func (c *Circle) Inertia() float64              { return math.Pi * math.Pow(c.Radius, 4) / 4 }
func (c *Circle) PolarInertia() float64         { return math.Pi * math.Pow(c.Radius, 4) / 2 }
func (c *Circle) Extent() (bottom, top float64) { return -c.Radius, c.Radius }
func (c *Circle) MaxRadius() float64            { return c.Radius }
func (c *Circle) Circular() bool                { return true }

func (c *Circle) Width(y float64) float64 { return chord(c.Radius, y) }

func (c *Circle) FirstMoment(y float64) float64 { return capMoment(c.Radius, y) }

// Annulus is a hollow round section.
type Annulus struct {
	Outer float64
	Inner float64
}

// NewAnnulus returns a tube with outer radius ro and inner radius ri.
func NewAnnulus(ro, ri float64) (*Annulus, error) {
	if err := positive("section.NewAnnulus", map[string]float64{"outer radius": ro, "inner radius": ri}); err != nil {
		return nil, err
	}
	if ri >= ro {
		return nil, invalid("section.NewAnnulus", "inner radius %g must be less than outer radius %g", ri, ro)
	}
	return &Annulus{Outer: ro, Inner: ri}, nil
}

func (a *Annulus) Name() string { return "annulus" }

func (a *Annulus) Area() float64 {
	return math.Pi * (a.Outer*a.Outer - a.Inner*a.Inner)
}

func (a *Annulus) Inertia() float64 {
	return math.Pi * (math.Pow(a.Outer, 4) - math.Pow(a.Inner, 4)) / 4
}

func (a *Annulus) PolarInertia() float64         { return 2 * a.Inertia() }
func (a *Annulus) Extent() (bottom, top float64) { return -a.Outer, a.Outer }
func (a *Annulus) MaxRadius() float64            { return a.Outer }
func (a *Annulus) Circular() bool                { return true }

func (a *Annulus) Width(y float64) float64 {
	return chord(a.Outer, y) - chord(a.Inner, y)
}

func (a *Annulus) FirstMoment(y float64) float64 {
	return capMoment(a.Outer, y) - capMoment(a.Inner, y)
}

// chord is the length of the horizontal chord at y through a circle of radius r.
func chord(r, y float64) float64 {
	d := r*r - y*y
	if d <= 0 {
		return 0
	}
	return 2 * math.Sqrt(d)
}

// capMoment is the first moment about the diameter of the circular segment
// beyond the chord at y.
func capMoment(r, y float64) float64 {
	d := r*r - y*y
	if d <= 0 {
		return 0
	}
	return 2.0 / 3.0 * math.Pow(d, 1.5)
}
