// Package member describes the geometry and material of a straight member.
//
// A Member is immutable once built. Stepped members carry an ordered list of
// Spans, each with its own flexural, torsional, axial and shear rigidity.
package member

import (
	"math"
	"slices"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/section"
)

// DefaultTolerance is the relative equilibrium residual accepted by the solver.
const DefaultTolerance = 1e-9

// Convention carries the per-member numerical and unit settings.
type Convention struct {
	// Tolerance is the relative residual ε for equilibrium checks.
	Tolerance float64

	// Units labels reported values, e.g. "N, mm". It is never used in
	// arithmetic.
	Units string
}

// DefaultConvention returns the SI convention used by the CLI.
func DefaultConvention() Convention {
	return Convention{Tolerance: DefaultTolerance, Units: "N, mm"}
}

// Segment overrides section properties over [Start, End]. Zero properties
// inherit the member's base values, or come from Shape when it is set.
type Segment struct {
	Start, End float64
	I, J, A    float64
	Shape      section.Shape
}

// overrides reports whether the segment changes any section property.
func (s Segment) overrides() bool {
	return s.Shape != nil || s.I > 0 || s.J > 0 || s.A > 0
}

// Span is an interval of constant rigidity.
type Span struct {
	Start, End float64
	EI         float64
	GJ         float64
	EA         float64
	// KGA is the Timoshenko shear rigidity, zero when shear deformation is
	// ignored.
	KGA float64
}

// Member is a straight prismatic or stepped beam/shaft.
type Member struct {
	length float64
	e, g   float64
	i, j   float64
	area   float64
	k      float64
	shape  section.Shape
	segs   []Segment
	conv   Convention
	spans  []Span
}

// Option configures optional member properties.
type Option func(*Member)

// WithShear sets the shear modulus G and the torsion constant J.
func WithShear(g, j float64) Option {
	return func(m *Member) { m.g, m.j = g, j }
}

// WithArea sets the cross-sectional area used for axial stress and stiffness.
func WithArea(a float64) Option {
	return func(m *Member) { m.area = a }
}

// WithShape attaches a cross-section. Missing I, A and (for round shapes) J
// are taken from it.
func WithShape(s section.Shape) Option {
	return func(m *Member) { m.shape = s }
}

// WithSegments declares stepped portions of the member.
func WithSegments(segs ...Segment) Option {
	return func(m *Member) { m.segs = append(m.segs, segs...) }
}

// WithShearCorrection enables Timoshenko shear deformation with factor k.
func WithShearCorrection(k float64) Option {
	return func(m *Member) { m.k = k }
}

// WithConvention replaces the default convention.
func WithConvention(c Convention) Option {
	return func(m *Member) { m.conv = c }
}

// New creates a member of the given length, elastic modulus and moment of
// inertia. I may be zero when a shape supplies it.
func New(length, e, i float64, opts ...Option) (*Member, error) {
	m := &Member{length: length, e: e, i: i, conv: DefaultConvention()}
	for _, opt := range opts {
		opt(m)
	}
	if m.shape != nil {
		if m.i <= 0 {
			m.i = m.shape.Inertia()
		}
		if m.area <= 0 {
			m.area = m.shape.Area()
		}
		if m.j <= 0 && m.shape.Circular() {
			m.j = m.shape.PolarInertia()
		}
	}
	for n := range m.segs {
		s := &m.segs[n]
		if s.Shape == nil {
			continue
		}
		if s.I <= 0 {
			s.I = s.Shape.Inertia()
		}
		if s.A <= 0 {
			s.A = s.Shape.Area()
		}
		if s.J <= 0 && s.Shape.Circular() {
			s.J = s.Shape.PolarInertia()
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.spans = m.buildSpans()
	return m, nil
}

func bad(v float64) bool {
	return !(v > 0) || math.IsInf(v, 0)
}

func (m *Member) validate() error {
	const op = "member.New"
	switch {
	case bad(m.length):
		return errs.New(op, errs.ErrInvalidGeometry, "length must be positive, got %g", m.length)
	case bad(m.e):
		return errs.New(op, errs.ErrInvalidGeometry, "elastic modulus must be positive, got %g", m.e)
	case bad(m.i):
		return errs.New(op, errs.ErrInvalidGeometry, "moment of inertia must be positive, got %g", m.i)
	case m.g < 0 || m.j < 0 || m.area < 0:
		return errs.New(op, errs.ErrInvalidGeometry, "shear modulus, torsion constant and area must not be negative")
	case m.k < 0:
		return errs.New(op, errs.ErrInvalidGeometry, "shear correction factor must not be negative, got %g", m.k)
	case m.k > 0 && (m.g <= 0 || m.area <= 0):
		return errs.New(op, errs.ErrInvalidGeometry, "shear correction requires a shear modulus and an area")
	}
	if m.conv.Tolerance <= 0 {
		m.conv.Tolerance = DefaultTolerance
	}

	slices.SortFunc(m.segs, func(a, b Segment) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	for n, s := range m.segs {
		if s.Start < 0 || s.End > m.length || s.Start >= s.End {
			return errs.New(op, errs.ErrInvalidPosition, "segment [%g, %g] outside [0, %g]", s.Start, s.End, m.length)
		}
		if s.I < 0 || s.J < 0 || s.A < 0 {
			return errs.New(op, errs.ErrInvalidGeometry, "segment [%g, %g] has negative properties", s.Start, s.End)
		}
		if n > 0 && s.Start < m.segs[n-1].End {
			return errs.New(op, errs.ErrInvalidGeometry, "segments [%g, %g] and [%g, %g] overlap",
				m.segs[n-1].Start, m.segs[n-1].End, s.Start, s.End)
		}
	}
	return nil
}

// buildSpans splits [0, L] at every segment boundary.
func (m *Member) buildSpans() []Span {
	breaks := []float64{0, m.length}
	for _, s := range m.segs {
		breaks = append(breaks, s.Start, s.End)
	}
	slices.Sort(breaks)
	breaks = slices.Compact(breaks)

	spans := make([]Span, 0, len(breaks)-1)
	for n := 0; n+1 < len(breaks); n++ {
		a, b := breaks[n], breaks[n+1]
		i, j, area := m.i, m.j, m.area
		mid := (a + b) / 2
		for _, s := range m.segs {
			if mid > s.Start && mid < s.End {
				if s.I > 0 {
					i = s.I
				}
				if s.J > 0 {
					j = s.J
				}
				if s.A > 0 {
					area = s.A
				}
			}
		}
		sp := Span{Start: a, End: b, EI: m.e * i, GJ: m.g * j, EA: m.e * area}
		if m.k > 0 {
			sp.KGA = m.k * m.g * area
		}
		spans = append(spans, sp)
	}
	return spans
}

// Length returns L.
func (m *Member) Length() float64 { return m.length }

// E returns the elastic modulus.
func (m *Member) E() float64 { return m.e }

// G returns the shear modulus, zero when not given.
func (m *Member) G() float64 { return m.g }

// I returns the base moment of inertia.
func (m *Member) I() float64 { return m.i }

// J returns the base torsion constant, zero when not given.
func (m *Member) J() float64 { return m.j }

// Area returns the base area, zero when not given.
func (m *Member) Area() float64 { return m.area }

// ShearCorrection returns the Timoshenko factor k, zero for Euler-Bernoulli.
func (m *Member) ShearCorrection() float64 { return m.k }

// Shape returns the attached cross-section or nil.
func (m *Member) Shape() section.Shape { return m.shape }

// Convention returns the member's convention.
func (m *Member) Convention() Convention { return m.conv }

// Spans returns the constant-rigidity intervals covering [0, L].
func (m *Member) Spans() []Span { return slices.Clone(m.spans) }

// HasTorsion reports whether every span has a torsional rigidity.
func (m *Member) HasTorsion() bool {
	for _, s := range m.spans {
		if s.GJ <= 0 {
			return false
		}
	}
	return true
}

// HasAxial reports whether every span has an axial rigidity.
func (m *Member) HasAxial() bool {
	for _, s := range m.spans {
		if s.EA <= 0 {
			return false
		}
	}
	return true
}

// Contains reports whether x lies on the member within tolerance.
func (m *Member) Contains(x float64) bool {
	eps := 1e-12 * math.Max(1, m.length)
	return x >= -eps && x <= m.length+eps && !math.IsNaN(x)
}

// segmentAt returns the segment covering x, right-continuous except at L.
func (m *Member) segmentAt(x float64) (Segment, bool) {
	for _, s := range m.segs {
		if x >= s.Start && x < s.End || (x == m.length && s.End == m.length) {
			return s, true
		}
	}
	return Segment{}, false
}

// SectionAt returns I, J and A at x.
func (m *Member) SectionAt(x float64) (i, j, a float64) {
	i, j, a = m.i, m.j, m.area
	if s, ok := m.segmentAt(x); ok {
		if s.I > 0 {
			i = s.I
		}
		if s.J > 0 {
			j = s.J
		}
		if s.A > 0 {
			a = s.A
		}
	}
	return i, j, a
}

// ShapeAt returns the cross-section at x, nil when the member has none. A
// segment that overrides I, J or A without its own shape has no known
// geometry, so fibre queries there fail with ErrInvalidQuery.
func (m *Member) ShapeAt(x float64) (section.Shape, error) {
	s, ok := m.segmentAt(x)
	switch {
	case !ok:
		return m.shape, nil
	case s.Shape != nil:
		return s.Shape, nil
	case s.overrides() && m.shape != nil:
		return nil, errs.New("member.ShapeAt", errs.ErrInvalidQuery,
			"segment [%g, %g] overrides the section properties without a shape", s.Start, s.End)
	}
	return m.shape, nil
}

// ShearModulus derives G from E and Poisson's ratio.
func ShearModulus(e, nu float64) float64 {
	return e / (2 * (1 + nu))
}
