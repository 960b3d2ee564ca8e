package analysis

import (
	"fmt"
	"strings"
)

// Quantity names a derived function of position.
type Quantity int

const (
	Shear Quantity = iota
	Moment
	Axial
	Torque
	Slope
	Deflection
	Twist
	AxialDisplacement
	Intensity
)

// Quantities lists every quantity in report order.
var Quantities = []Quantity{Intensity, Shear, Moment, Slope, Deflection, Axial, AxialDisplacement, Torque, Twist}

var quantityNames = map[Quantity]string{
	Shear:             "shear",
	Moment:            "moment",
	Axial:             "axial",
	Torque:            "torque",
	Slope:             "slope",
	Deflection:        "deflection",
	Twist:             "twist",
	AxialDisplacement: "elongation",
	Intensity:         "load",
}

func (q Quantity) String() string {
	if s, ok := quantityNames[q]; ok {
		return s
	}
	return fmt.Sprintf("Quantity(%d)", int(q))
}

// Symbol returns the conventional symbol used in tables.
func (q Quantity) Symbol() string {
	switch q {
	case Shear:
		return "V"
	case Moment:
		return "M"
	case Axial:
		return "N"
	case Torque:
		return "T"
	case Slope:
		return "θ"
	case Deflection:
		return "v"
	case Twist:
		return "φ"
	case AxialDisplacement:
		return "u"
	case Intensity:
		return "q"
	}
	return "?"
}

// ParseQuantity accepts a name or a symbol.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for q, name := range quantityNames {
		if s == name || s == strings.ToLower(q.Symbol()) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown quantity %q", s)
}
