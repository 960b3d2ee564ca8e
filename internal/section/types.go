package section

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gobeam/internal/errs"
)

// Shape is a cross-section described relative to its centroid. The y axis
// points upward, so Extent returns the bottom fibre as a negative number.
type Shape interface {
	// Name identifies the shape in reports.
	Name() string

	// Area returns the gross area.
	Area() float64

	// Inertia returns the second moment of area about the horizontal
	// centroidal axis.
	Inertia() float64

	// PolarInertia returns the polar moment of area about the centroid. It is
	// the torsion constant only for circular shapes.
	PolarInertia() float64

	// Extent returns the y of the bottom and top fibres.
	Extent() (bottom, top float64)

	// Width returns the thickness t(y) cut by a horizontal line at y.
	Width(y float64) float64

	// FirstMoment returns Q(y), the first moment about the centroidal axis of
	// the area beyond the line at y (above it for y ≥ 0, below otherwise).
	FirstMoment(y float64) float64

	// MaxRadius returns the distance from the centroid to the farthest point.
	MaxRadius() float64

	// Circular reports whether St. Venant torsion τ = T·r/J applies.
	Circular() bool
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Properties holds calculated geometric properties
type Properties struct {
	Name string

	// Overall dimensions
	Width  float64 // Maximum width
	Height float64 // Total height
	Area   float64

	// Second moments about the centroidal axes
	Ixx float64
	Iyy float64
	Ixy float64
	J   float64

	// Fibre distances from the centroid
	Bottom float64
	Top    float64

	// Elastic section modulus I / c for the extreme fibre
	SectionModulus float64
}

// CalculateProperties summarises a shape for reporting.
func CalculateProperties(s Shape) *Properties {
	bottom, top := s.Extent()
	props := &Properties{
		Name:   s.Name(),
		Height: top - bottom,
		Area:   s.Area(),
		Ixx:    s.Inertia(),
		J:      s.PolarInertia(),
		Bottom: bottom,
		Top:    top,
	}
	if c := math.Max(math.Abs(bottom), math.Abs(top)); c > 0 {
		props.SectionModulus = props.Ixx / c
	}
	switch v := s.(type) {
	case *Polygon:
		props.Width = v.maxX - v.minX
		props.Iyy = v.iyy
		props.Ixy = v.ixy
	case *Circle:
		props.Width = 2 * v.Radius
		props.Iyy = props.Ixx
	case *Annulus:
		props.Width = 2 * v.Outer
		props.Iyy = props.Ixx
	}
	return props
}

func invalid(op, format string, args ...any) error {
	return errs.New(op, errs.ErrInvalidGeometry, format, args...)
}

func positive(op string, vals map[string]float64) error {
	for k, v := range vals {
		if !(v > 0) || math.IsInf(v, 0) {
			return invalid(op, "%s must be positive, got %s", k, fmt.Sprint(v))
		}
	}
	return nil
}
