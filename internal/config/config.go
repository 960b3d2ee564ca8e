// Package config reads and writes YAML member definitions.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/section"
)

const (
	DefaultStations = 21
	DefaultUnits    = "N, mm"
	DefaultLength   = 6000.0
	DefaultMaterial = "A36"
	DefaultAngle    = 90.0
)

type Config struct {
	Name      string          `yaml:"name,omitempty"`
	Units     string          `yaml:"units"`
	Stations  int             `yaml:"stations"`
	Tolerance float64         `yaml:"tolerance,omitempty"`
	Member    MemberConfig    `yaml:"member"`
	Section   *section.Spec   `yaml:"section,omitempty"`
	Supports  []SupportConfig `yaml:"supports"`
	Loads     []LoadConfig    `yaml:"loads"`
}

type MemberConfig struct {
	Length          float64         `yaml:"length"`
	Material        string          `yaml:"material,omitempty"`
	Fc              float64         `yaml:"fc,omitempty"`
	E               float64         `yaml:"e,omitempty"`
	Nu              float64         `yaml:"nu,omitempty"`
	G               float64         `yaml:"g,omitempty"`
	I               float64         `yaml:"i,omitempty"`
	J               float64         `yaml:"j,omitempty"`
	Area            float64         `yaml:"area,omitempty"`
	ShearCorrection float64         `yaml:"shear_correction,omitempty"`
	Segments        []SegmentConfig `yaml:"segments,omitempty"`
}

// SegmentConfig overrides the member properties on [Start, End). With a
// section, unset I, J and Area come from it and stresses use its geometry.
type SegmentConfig struct {
	Start   float64       `yaml:"start"`
	End     float64       `yaml:"end"`
	I       float64       `yaml:"i,omitempty"`
	J       float64       `yaml:"j,omitempty"`
	Area    float64       `yaml:"area,omitempty"`
	Section *section.Spec `yaml:"section,omitempty"`
}

type SupportConfig struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
}

type LoadConfig struct {
	Type      string   `yaml:"type"`
	Case      string   `yaml:"case,omitempty"`
	X         float64  `yaml:"x,omitempty"`
	Magnitude float64  `yaml:"magnitude,omitempty"`
	Angle     *float64 `yaml:"angle,omitempty"`

	Start          float64 `yaml:"start,omitempty"`
	End            float64 `yaml:"end,omitempty"`
	Intensity      float64 `yaml:"intensity,omitempty"`
	StartIntensity float64 `yaml:"start_intensity,omitempty"`
	EndIntensity   float64 `yaml:"end_intensity,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "simply supported beam",
		Units:    DefaultUnits,
		Stations: DefaultStations,
		Member: MemberConfig{
			Length:   DefaultLength,
			Material: DefaultMaterial,
		},
		Section: &section.Spec{Shape: "rectangle", Width: 200, Height: 400},
		Supports: []SupportConfig{
			{Type: "pin", X: 0},
			{Type: "roller", X: DefaultLength},
		},
		Loads: []LoadConfig{
			{Type: "uniform", Start: 0, End: DefaultLength, Intensity: -10},
			{Type: "force", Case: nscp.Live, X: DefaultLength / 2, Magnitude: -20000},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	// lists replace the defaults rather than merging into them
	cfg.Supports, cfg.Loads, cfg.Section = nil, nil, nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Model is a member with its populated registry.
type Model struct {
	Member   *member.Member
	Registry *load.Registry
	Supports []load.Handle
	Loads    []load.Handle
}

// Build constructs the member and registers every support and load.
func (c *Config) Build() (*Model, error) {
	mc := c.Member
	e, g := mc.E, mc.G
	if mc.Material != "" {
		mat, err := nscp.Preset(mc.Material, mc.Fc)
		if err != nil {
			return nil, err
		}
		if e <= 0 {
			e = mat.E
		}
		if g <= 0 && mc.Nu <= 0 {
			g = mat.G()
		}
	}
	if g <= 0 && mc.Nu > 0 {
		g = member.ShearModulus(e, mc.Nu)
	}

	opts := []member.Option{
		member.WithConvention(member.Convention{Tolerance: c.Tolerance, Units: c.Units}),
	}
	if c.Section != nil {
		shape, err := c.Section.Build()
		if err != nil {
			return nil, fmt.Errorf("section: %w", err)
		}
		opts = append(opts, member.WithShape(shape))
	}
	if g > 0 || mc.J > 0 {
		opts = append(opts, member.WithShear(g, mc.J))
	}
	if mc.Area > 0 {
		opts = append(opts, member.WithArea(mc.Area))
	}
	if mc.ShearCorrection > 0 {
		opts = append(opts, member.WithShearCorrection(mc.ShearCorrection))
	}
	for n, s := range mc.Segments {
		seg := member.Segment{Start: s.Start, End: s.End, I: s.I, J: s.J, A: s.Area}
		if s.Section != nil {
			shape, err := s.Section.Build()
			if err != nil {
				return nil, fmt.Errorf("segment %d section: %w", n+1, err)
			}
			seg.Shape = shape
		}
		opts = append(opts, member.WithSegments(seg))
	}

	m, err := member.New(mc.Length, e, mc.I, opts...)
	if err != nil {
		return nil, err
	}

	model := &Model{Member: m, Registry: load.NewRegistry(m.Length())}
	for n, s := range c.Supports {
		kind, err := load.ParseSupportKind(s.Type)
		if err != nil {
			return nil, fmt.Errorf("support %d: %w", n+1, err)
		}
		h, err := model.Registry.AddSupport(s.X, kind)
		if err != nil {
			return nil, fmt.Errorf("support %d: %w", n+1, err)
		}
		model.Supports = append(model.Supports, h)
	}
	for n, lc := range c.Loads {
		l, err := lc.Load()
		if err != nil {
			return nil, fmt.Errorf("load %d: %w", n+1, err)
		}
		h, err := model.Registry.AddLoad(l)
		if err != nil {
			return nil, fmt.Errorf("load %d: %w", n+1, err)
		}
		model.Loads = append(model.Loads, h)
	}
	return model, nil
}

// Load converts the entry to a load variant.
func (lc LoadConfig) Load() (load.Load, error) {
	var l load.Load
	switch strings.ToLower(strings.TrimSpace(lc.Type)) {
	case "force", "point":
		angle := DefaultAngle
		if lc.Angle != nil {
			angle = *lc.Angle
		}
		l = load.AngledForce(lc.X, lc.Magnitude, angle)
	case "moment", "couple":
		l = load.Moment(lc.X, lc.Magnitude)
	case "torque":
		l = load.Torque(lc.X, lc.Magnitude)
	case "uniform", "udl":
		l = load.Uniform(lc.Start, lc.End, lc.Intensity)
	case "linear", "triangular", "trapezoidal":
		l = load.Linear(lc.Start, lc.End, lc.StartIntensity, lc.EndIntensity)
	default:
		return load.Load{}, fmt.Errorf("unknown load type %q", lc.Type)
	}
	l.Case = lc.Case
	return l, nil
}
