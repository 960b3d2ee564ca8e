package section

import (
	"math"
	"sort"
)

// Polygon is a cross-section bounded by an outer ring of vertices and
// optional holes. Vertices may be given in any convenient coordinate system
// and in either orientation; properties are reported about the centroid.
type Polygon struct {
	Label    string
	Vertices []Point
	Holes    [][]Point

	// derived, in the input coordinate system
	area, cx, cy  float64
	ixx, iyy, ixy float64 // centroidal
	minX, maxX    float64
	minY, maxY    float64
}

// NewPolygon validates the rings and computes the section properties.
func NewPolygon(name string, vertices []Point, holes ...[]Point) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, invalid("section.NewPolygon", "section must have at least 3 vertices")
	}
	for i, h := range holes {
		if len(h) < 3 {
			return nil, invalid("section.NewPolygon", "hole %d must have at least 3 vertices", i+1)
		}
	}
	p := &Polygon{Label: name, Vertices: vertices, Holes: holes}
	p.calculate()
	if !(p.area > 0) {
		return nil, invalid("section.NewPolygon", "section %q has no area", name)
	}
	return p, nil
}

// NewRectangle returns a b × h rectangle centred on the origin.
func NewRectangle(b, h float64) (*Polygon, error) {
	if err := positive("section.NewRectangle", map[string]float64{"width": b, "height": h}); err != nil {
		return nil, err
	}
	return NewPolygon("rectangle", []Point{
		{-b / 2, -h / 2}, {b / 2, -h / 2}, {b / 2, h / 2}, {-b / 2, h / 2},
	})
}

// NewIShape returns a doubly symmetric I-section of overall depth d.
func NewIShape(d, bf, tf, tw float64) (*Polygon, error) {
	if err := positive("section.NewIShape", map[string]float64{
		"depth": d, "flange width": bf, "flange thickness": tf, "web thickness": tw,
	}); err != nil {
		return nil, err
	}
	if 2*tf >= d || tw >= bf {
		return nil, invalid("section.NewIShape", "flanges must be thinner than half the depth and the web narrower than the flange")
	}
	h, b, w := d/2, bf/2, tw/2
	return NewPolygon("I-shape", []Point{
		{-b, -h}, {b, -h}, {b, -h + tf}, {w, -h + tf},
		{w, h - tf}, {b, h - tf}, {b, h}, {-b, h},
		{-b, h - tf}, {-w, h - tf}, {-w, -h + tf}, {-b, -h + tf},
	})
}

func (p *Polygon) rings() [][]Point {
	return append([][]Point{p.Vertices}, p.Holes...)
}

// ringIntegrals uses the shoelace formula for area, first and second moments
// of a closed ring about the input origin. Results carry the ring orientation.
func ringIntegrals(ring []Point) (a, sx, sy, ix, iy, ixy float64) {
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := ring[i].X, ring[i].Y
		xj, yj := ring[j].X, ring[j].Y
		cross := xi*yj - xj*yi
		a += cross
		sx += (xi + xj) * cross
		sy += (yi + yj) * cross
		ix += (yi*yi + yi*yj + yj*yj) * cross
		iy += (xi*xi + xi*xj + xj*xj) * cross
		ixy += (xi*yj + 2*xi*yi + 2*xj*yj + xj*yi) * cross
	}
	return a / 2, sx / 6, sy / 6, ix / 12, iy / 12, ixy / 24
}

// orientation returns the factor that makes the outer ring count positive and
// holes negative.
func orientation(signedArea float64, hole bool) float64 {
	f := 1.0
	if signedArea < 0 {
		f = -1
	}
	if hole {
		f = -f
	}
	return f
}

func (p *Polygon) calculate() {
	var a, sx, sy, ix, iy, ixy float64
	for k, ring := range p.rings() {
		ra, rsx, rsy, rix, riy, rixy := ringIntegrals(ring)
		f := orientation(ra, k > 0)
		a += f * ra
		sx += f * rsx
		sy += f * rsy
		ix += f * rix
		iy += f * riy
		ixy += f * rixy
	}
	p.area = a
	if a > 0 {
		p.cx = sx / a
		p.cy = sy / a
	}
	p.ixx = ix - a*p.cy*p.cy
	p.iyy = iy - a*p.cx*p.cx
	p.ixy = ixy - a*p.cx*p.cy

	// Find bounding box
	p.minX, p.maxX = p.Vertices[0].X, p.Vertices[0].X
	p.minY, p.maxY = p.Vertices[0].Y, p.Vertices[0].Y
	for _, v := range p.Vertices {
		p.minX = math.Min(p.minX, v.X)
		p.maxX = math.Max(p.maxX, v.X)
		p.minY = math.Min(p.minY, v.Y)
		p.maxY = math.Max(p.maxY, v.Y)
	}
}

func (p *Polygon) Name() string          { return p.Label }
func (p *Polygon) Area() float64         { return p.area }
func (p *Polygon) Inertia() float64      { return p.ixx }
func (p *Polygon) PolarInertia() float64 { return p.ixx + p.iyy }
func (p *Polygon) Circular() bool        { return false }

// ProductOfInertia returns Ixy about the centroid. It is zero when either
// centroidal axis is an axis of symmetry.
func (p *Polygon) ProductOfInertia() float64 { return p.ixy }

// Centroid returns the centroid in the input coordinate system.
func (p *Polygon) Centroid() (x, y float64) { return p.cx, p.cy }

func (p *Polygon) Extent() (bottom, top float64) {
	return p.minY - p.cy, p.maxY - p.cy
}

func (p *Polygon) MaxRadius() float64 {
	var r float64
	for _, v := range p.Vertices {
		r = math.Max(r, math.Hypot(v.X-p.cx, v.Y-p.cy))
	}
	return r
}

// Width calculates the width at a height y above the centroid using
// horizontal line intersection with every ring.
func (p *Polygon) Width(y float64) float64 {
	intersections := p.findIntersectionsAtY(y + p.cy)
	if len(intersections) < 2 {
		return 0
	}

	// Sort intersections by X coordinate
	sort.Float64s(intersections)

	// Total width is the sum of all solid segments
	var totalWidth float64
	for i := 0; i+1 < len(intersections); i += 2 {
		totalWidth += intersections[i+1] - intersections[i]
	}
	return totalWidth
}

// findIntersectionsAtY finds all X coordinates where a horizontal line at Y
// (input coordinates) crosses an edge of the section.
func (p *Polygon) findIntersectionsAtY(y float64) []float64 {
	var intersections []float64
	for _, ring := range p.rings() {
		n := len(ring)
		for i := 0; i < n; i++ {
			v1, v2 := ring[i], ring[(i+1)%n]

			// Check if the edge crosses the Y level
			if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
				t := (y - v1.Y) / (v2.Y - v1.Y)
				intersections = append(intersections, v1.X+t*(v2.X-v1.X))
			}
		}
	}
	return intersections
}

// FirstMoment clips every ring at the line y and integrates the retained part.
func (p *Polygon) FirstMoment(y float64) float64 {
	cut := y + p.cy
	above := y >= 0
	var q float64
	for k, ring := range p.rings() {
		clipped := clipRing(ring, cut, above)
		if len(clipped) < 3 {
			continue
		}
		ra, _, rsy, _, _, _ := ringIntegrals(clipped)
		// orientation of the clipped ring follows its parent
		pa, _, _, _, _, _ := ringIntegrals(ring)
		f := orientation(pa, k > 0)
		q += f * (rsy - ra*p.cy)
	}
	return math.Abs(q)
}

// clipRing keeps the part of a ring above (or below) the horizontal line y
// with a Sutherland-Hodgman pass against a single edge.
func clipRing(vertices []Point, y float64, above bool) []Point {
	inside := func(pt Point) bool {
		if above {
			return pt.Y >= y
		}
		return pt.Y <= y
	}

	var result []Point
	n := len(vertices)
	for i := 0; i < n; i++ {
		curr := vertices[i]
		next := vertices[(i+1)%n]

		currIn, nextIn := inside(curr), inside(next)
		if currIn {
			result = append(result, curr)
		}

		// Check for intersection with clip line
		if currIn != nextIn {
			t := (y - curr.Y) / (next.Y - curr.Y)
			result = append(result, Point{X: curr.X + t*(next.X-curr.X), Y: y})
		}
	}
	return result
}
