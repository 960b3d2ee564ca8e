package member

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/section"
)

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		l, e, i float64
		opts    []Option
		want    error
	}{
		{"zero length", 0, 200e3, 1e6, nil, errs.ErrInvalidGeometry},
		{"negative modulus", 10, -1, 1e6, nil, errs.ErrInvalidGeometry},
		{"zero inertia", 10, 200e3, 0, nil, errs.ErrInvalidGeometry},
		{"nan length", math.NaN(), 200e3, 1e6, nil, errs.ErrInvalidGeometry},
		{"shear correction without area", 10, 200e3, 1e6, []Option{WithShear(80e3, 0), WithShearCorrection(5.0 / 6)}, errs.ErrInvalidGeometry},
		{"segment outside", 10, 200e3, 1e6, []Option{WithSegments(Segment{Start: 5, End: 12, I: 2e6})}, errs.ErrInvalidPosition},
		{"overlapping segments", 10, 200e3, 1e6, []Option{WithSegments(
			Segment{Start: 0, End: 6, I: 2e6}, Segment{Start: 5, End: 8, I: 3e6})}, errs.ErrInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.l, tt.e, tt.i, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_FromShape(t *testing.T) {
	c, err := section.NewCircle(20)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(1000, 200e3, 0, WithShape(c), WithShear(80e3, 0))
	if err != nil {
		t.Fatal(err)
	}
	if m.I() != c.Inertia() || m.J() != c.PolarInertia() || m.Area() != c.Area() {
		t.Errorf("properties not taken from shape: I=%g J=%g A=%g", m.I(), m.J(), m.Area())
	}
	if !m.HasTorsion() || !m.HasAxial() {
		t.Error("expected torsional and axial rigidity")
	}
	if m.Convention().Tolerance != DefaultTolerance {
		t.Errorf("tolerance = %g", m.Convention().Tolerance)
	}
}

func TestSpans_Stepped(t *testing.T) {
	m, err := New(10, 100, 2, WithArea(5), WithSegments(Segment{Start: 4, End: 6, I: 8}))
	if err != nil {
		t.Fatal(err)
	}
	spans := m.Spans()
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}
	wantEI := []float64{200, 800, 200}
	for n, s := range spans {
		if s.EI != wantEI[n] {
			t.Errorf("span %d EI = %g, want %g", n, s.EI, wantEI[n])
		}
		if s.EA != 500 {
			t.Errorf("span %d EA = %g", n, s.EA)
		}
		if s.GJ != 0 {
			t.Errorf("span %d GJ = %g", n, s.GJ)
		}
	}
	if m.HasTorsion() {
		t.Error("no shear modulus given")
	}
	if i, _, _ := m.SectionAt(5); i != 8 {
		t.Errorf("I(5) = %g", i)
	}
	if i, _, _ := m.SectionAt(6); i != 2 {
		t.Errorf("I(6) = %g", i)
	}
}

func TestContains(t *testing.T) {
	m, err := New(10, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	for x, want := range map[float64]bool{-1: false, 0: true, 10: true, 10.5: false, 5: true} {
		if got := m.Contains(x); got != want {
			t.Errorf("Contains(%g) = %v", x, got)
		}
	}
	if g := ShearModulus(200e3, 0.25); g != 80e3 {
		t.Errorf("G = %g", g)
	}
}

func TestShapeAt_Segments(t *testing.T) {
	base, err := section.NewRectangle(100, 200)
	if err != nil {
		t.Fatal(err)
	}
	deep, err := section.NewRectangle(100, 400)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(10, 200e3, 0, WithShape(base), WithSegments(
		Segment{Start: 0, End: 4, Shape: deep},
		Segment{Start: 6, End: 8, I: 2 * base.Inertia()},
	))
	if err != nil {
		t.Fatal(err)
	}

	if i, _, a := m.SectionAt(2); i != deep.Inertia() || a != deep.Area() {
		t.Errorf("SectionAt(2) = I %g, A %g; want the deep rectangle", i, a)
	}
	if s, err := m.ShapeAt(2); err != nil || s != section.Shape(deep) {
		t.Errorf("ShapeAt(2) = %v, %v", s, err)
	}
	if s, err := m.ShapeAt(5); err != nil || s != section.Shape(base) {
		t.Errorf("ShapeAt(5) = %v, %v", s, err)
	}
	if _, err := m.ShapeAt(7); !errors.Is(err, errs.ErrInvalidQuery) {
		t.Errorf("ShapeAt(7) err = %v, want ErrInvalidQuery", err)
	}
	if spans := m.Spans(); spans[0].EI != 200e3*deep.Inertia() {
		t.Errorf("span 0 EI = %g", spans[0].EI)
	}
}
