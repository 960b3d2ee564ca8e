package load

import (
	"fmt"
	"strings"
)

// DOF is a set of restrained degrees of freedom.
type DOF uint8

const (
	Axial DOF = 1 << iota
	Transverse
	Rotation
	Twist
)

// Has reports whether every freedom in d2 is in d.
func (d DOF) Has(d2 DOF) bool { return d&d2 == d2 }

// SupportKind discriminates support variants.
type SupportKind int

const (
	Free SupportKind = iota
	Pin
	Roller
	Fixed
)

// Restrains returns the degrees of freedom a support kind removes.
func (k SupportKind) Restrains() DOF {
	switch k {
	case Pin:
		return Axial | Transverse
	case Roller:
		return Transverse
	case Fixed:
		return Axial | Transverse | Rotation | Twist
	}
	return 0
}

func (k SupportKind) String() string {
	switch k {
	case Free:
		return "free"
	case Pin:
		return "pin"
	case Roller:
		return "roller"
	case Fixed:
		return "fixed"
	}
	return fmt.Sprintf("SupportKind(%d)", int(k))
}

// ParseSupportKind parses the names used in input files.
func ParseSupportKind(s string) (SupportKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return Free, nil
	case "pin", "pinned", "hinge":
		return Pin, nil
	case "roller":
		return Roller, nil
	case "fixed", "clamped":
		return Fixed, nil
	}
	return Free, fmt.Errorf("unknown support kind %q", s)
}

// Support is a kinematic constraint at a position.
type Support struct {
	Kind     SupportKind
	Position float64
}
