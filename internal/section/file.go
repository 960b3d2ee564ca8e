package section

import (
	"encoding/json"
	"os"
	"strings"
)

// Spec is the serialised description of a shape, shared by section JSON files
// and the beam YAML input.
type Spec struct {
	Shape string `json:"shape" yaml:"shape"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`

	// rectangle
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`

	// I-shape
	Depth           float64 `json:"depth,omitempty" yaml:"depth,omitempty"`
	FlangeWidth     float64 `json:"flange_width,omitempty" yaml:"flange_width,omitempty"`
	FlangeThickness float64 `json:"flange_thickness,omitempty" yaml:"flange_thickness,omitempty"`
	WebThickness    float64 `json:"web_thickness,omitempty" yaml:"web_thickness,omitempty"`

	// circle and annulus
	Radius      float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	InnerRadius float64 `json:"inner_radius,omitempty" yaml:"inner_radius,omitempty"`

	// polygon
	Vertices []Point   `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Holes    [][]Point `json:"holes,omitempty" yaml:"holes,omitempty"`
}

// Build turns a Spec into a Shape. An empty shape name with vertices is
// treated as a polygon.
func (s Spec) Build() (Shape, error) {
	kind := strings.ToLower(strings.TrimSpace(s.Shape))
	if kind == "" && len(s.Vertices) > 0 {
		kind = "polygon"
	}
	switch kind {
	case "rectangle", "rect":
		return NewRectangle(s.Width, s.Height)
	case "i", "i-shape", "ishape", "wide-flange":
		return NewIShape(s.Depth, s.FlangeWidth, s.FlangeThickness, s.WebThickness)
	case "circle":
		return NewCircle(s.Radius)
	case "annulus", "tube", "pipe":
		return NewAnnulus(s.Radius, s.InnerRadius)
	case "polygon":
		name := s.Name
		if name == "" {
			name = "polygon"
		}
		return NewPolygon(name, s.Vertices, s.Holes...)
	default:
		return nil, invalid("section.Build", "unknown shape %q", s.Shape)
	}
}

// LoadFromFile loads a section definition from a JSON file
func LoadFromFile(filepath string) (Shape, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	return spec.Build()
}
