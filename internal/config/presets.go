package config

import (
	"slices"

	"github.com/alexiusacademia/gobeam/internal/section"
)

func angle(a float64) *float64 { return &a }

// roundSegment returns a solid round portion of radius r.
func roundSegment(start, end, r float64) SegmentConfig {
	return SegmentConfig{
		Start:   start,
		End:     end,
		Section: &section.Spec{Shape: "circle", Radius: r},
	}
}

var Presets = map[string]*Config{
	"simple": DefaultConfig(),
	"cantilever": {
		Name: "cantilever", Units: DefaultUnits, Stations: DefaultStations,
		Member:   MemberConfig{Length: 3000, Material: DefaultMaterial},
		Section:  &section.Spec{Shape: "i", Depth: 300, FlangeWidth: 150, FlangeThickness: 12, WebThickness: 8},
		Supports: []SupportConfig{{Type: "fixed", X: 0}, {Type: "free", X: 3000}},
		Loads: []LoadConfig{
			{Type: "uniform", Start: 0, End: 3000, Intensity: -5},
			{Type: "force", X: 3000, Magnitude: -10000, Case: "L"},
		},
	},
	"propped": {
		Name: "propped cantilever", Units: DefaultUnits, Stations: DefaultStations,
		Member:   MemberConfig{Length: 8000, Material: DefaultMaterial},
		Section:  &section.Spec{Shape: "i", Depth: 400, FlangeWidth: 200, FlangeThickness: 16, WebThickness: 10},
		Supports: []SupportConfig{{Type: "fixed", X: 0}, {Type: "roller", X: 8000}},
		Loads:    []LoadConfig{{Type: "force", X: 4000, Magnitude: -50000}},
	},
	"continuous": {
		Name: "two-span continuous beam", Units: DefaultUnits, Stations: 41,
		Member:   MemberConfig{Length: 12000, Material: "concrete", Fc: 28},
		Section:  &section.Spec{Shape: "rectangle", Width: 300, Height: 500},
		Supports: []SupportConfig{{Type: "pin", X: 0}, {Type: "roller", X: 6000}, {Type: "roller", X: 12000}},
		Loads: []LoadConfig{
			{Type: "uniform", Start: 0, End: 12000, Intensity: -15},
			{Type: "linear", Start: 6000, End: 12000, StartIntensity: 0, EndIntensity: -10, Case: "L"},
		},
	},
	"shaft": {
		Name: "stepped shaft", Units: DefaultUnits, Stations: DefaultStations,
		Member: MemberConfig{
			Length: 1200, Material: DefaultMaterial,
			Segments: []SegmentConfig{roundSegment(600, 1200, 20)},
		},
		Section:  &section.Spec{Shape: "circle", Radius: 30},
		Supports: []SupportConfig{{Type: "fixed", X: 0}, {Type: "fixed", X: 1200}},
		Loads: []LoadConfig{
			{Type: "torque", X: 600, Magnitude: 2e6},
			{Type: "force", X: 900, Magnitude: 5000, Angle: angle(0)},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
