package analysis

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
	"github.com/alexiusacademia/gobeam/internal/section"
)

const (
	testE = 200e3
	testI = 8e6
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(1, math.Abs(b))
}

func setup(t *testing.T, l float64, opts ...member.Option) (*Analysis, *load.Registry) {
	t.Helper()
	m, err := member.New(l, testE, testI, opts...)
	if err != nil {
		t.Fatal(err)
	}
	r := load.NewRegistry(l)
	return New(m, r), r
}

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
}

func TestSimplySupported(t *testing.T) {
	a, r := setup(t, 10)
	h := must[load.Handle](t)
	pin := h(r.AddSupport(0, load.Pin))
	roller := h(r.AddSupport(10, load.Roller))
	h(r.AddLoad(load.Force(5, -1000)))

	re := must[float64](t)
	for _, s := range []load.Handle{pin, roller} {
		rx, err := a.ReactionAt(s)
		if err != nil {
			t.Fatal(err)
		}
		if !near(rx.Fy, 500, 1e-9) {
			t.Errorf("reaction = %g, want 500", rx.Fy)
		}
	}
	if got := re(a.Moment(5)); !near(got, 2500, 1e-9) {
		t.Errorf("M(5) = %g", got)
	}
	for _, x := range []float64{0.1, 2, 4.9} {
		if got := re(a.Shear(x)); !near(got, 500, 1e-9) {
			t.Errorf("V(%g) = %g", x, got)
		}
	}
	for _, x := range []float64{5.1, 7, 9.9} {
		if got := re(a.Shear(x)); !near(got, -500, 1e-9) {
			t.Errorf("V(%g) = %g", x, got)
		}
	}
	want := -1000.0 * 1000 / (48 * testE * testI)
	if got := re(a.Deflection(5)); !near(got, want, 1e-9) {
		t.Errorf("v(5) = %g, want %g", got, want)
	}
	x, v, err := a.Extremum(Moment, 0, 10)
	if err != nil || !near(x, 5, 1e-12) || !near(v, 2500, 1e-9) {
		t.Errorf("extremum = (%g, %g, %v)", x, v, err)
	}
	zs, err := a.ZeroCrossings(Shear, 0, 10)
	if err != nil || len(zs) != 1 || !near(zs[0], 5, 1e-12) {
		t.Errorf("shear zero crossings = %v, %v", zs, err)
	}
}

// Reactions are the actions on the member and deflection is upward
// positive, so the root couple is +wL²/2 (counter-clockwise) and the tip
// moves by −wL⁴/(8EI). The magnitudes are the textbook wL²/2 and wL⁴/(8EI);
// only the signs follow the upward-positive convention.
func TestCantileverUniform(t *testing.T) {
	const w, l = 2.0, 6.0
	a, r := setup(t, l)
	fixed := must[load.Handle](t)(r.AddSupport(0, load.Fixed))
	must[load.Handle](t)(r.AddSupport(l, load.Free))
	must[load.Handle](t)(r.AddLoad(load.Uniform(0, l, -w)))

	re, err := a.ReactionAt(fixed)
	if err != nil {
		t.Fatal(err)
	}
	if !near(re.Fy, w*l, 1e-9) || !near(re.Mz, w*l*l/2, 1e-9) {
		t.Errorf("reaction = %+v", re)
	}
	val := must[float64](t)
	if got := val(a.Moment(0)); !near(got, -w*l*l/2, 1e-9) {
		t.Errorf("M(0) = %g", got)
	}
	want := -w * math.Pow(l, 4) / (8 * testE * testI)
	if got := val(a.Deflection(l)); !near(got, want, 1e-9) {
		t.Errorf("v(L) = %g, want %g", got, want)
	}
	x, v, err := a.Extremum(Deflection, 0, l)
	if err != nil || !near(x, l, 1e-12) || !near(v, want, 1e-9) {
		t.Errorf("deflection extremum = (%g, %g, %v)", x, v, err)
	}
}

func TestProppedCantilever(t *testing.T) {
	const p, l = 1600.0, 8.0
	a, r := setup(t, l)
	must[load.Handle](t)(r.AddSupport(0, load.Fixed))
	roller := must[load.Handle](t)(r.AddSupport(l, load.Roller))
	must[load.Handle](t)(r.AddLoad(load.Force(l/2, -p)))

	re, err := a.ReactionAt(roller)
	if err != nil {
		t.Fatal(err)
	}
	if !near(re.Fy, 5*p/16, 1e-9) {
		t.Errorf("roller = %g, want %g", re.Fy, 5*p/16)
	}
	scale := p * l * l * l / (testE * testI)
	if v := must[float64](t)(a.Deflection(l)); math.Abs(v) > 1e-9*scale {
		t.Errorf("deflection at roller = %g", v)
	}
	res, _ := a.Result()
	if res.Degree != 1 {
		t.Errorf("degree = %d", res.Degree)
	}
}

func TestBoundarySatisfaction(t *testing.T) {
	// stepped continuous beam with a fixed end and an overhang
	a, r := setup(t, 12, member.WithSegments(member.Segment{Start: 3, End: 7, I: 3 * testI}))
	must[load.Handle](t)(r.AddSupport(0, load.Fixed))
	must[load.Handle](t)(r.AddSupport(5, load.Roller))
	must[load.Handle](t)(r.AddSupport(10, load.Pin))
	must[load.Handle](t)(r.AddLoad(load.Linear(0, 12, -1, -4)))
	must[load.Handle](t)(r.AddLoad(load.Force(12, -20)))
	must[load.Handle](t)(r.AddLoad(load.Moment(6, 15)))

	_, vmax, err := a.Extremum(Deflection, 0, 12)
	if err != nil {
		t.Fatal(err)
	}
	tol := 1e-8 * math.Abs(vmax)
	for _, s := range r.Supports() {
		x := s.Support.Position
		if v := must[float64](t)(a.Deflection(x)); math.Abs(v) > tol {
			t.Errorf("v(%g) = %g at %s", x, v, s.Support.Kind)
		}
		if s.Support.Kind == load.Fixed {
			_, tmax, _ := a.Extremum(Slope, 0, 12)
			if th := must[float64](t)(a.Slope(x)); math.Abs(th) > 1e-8*math.Abs(tmax) {
				t.Errorf("θ(%g) = %g", x, th)
			}
		}
	}

	// equilibrium closure
	res, _ := a.Result()
	var fy, mz float64
	for _, e := range r.Loads() {
		_, y, m, _ := e.Load.Resultant()
		fy, mz = fy+y, mz+m
	}
	for _, l := range res.Loads() {
		_, y, m, _ := l.Resultant()
		fy, mz = fy+y, mz+m
	}
	if math.Abs(fy) > 1e-9 || math.Abs(mz) > 1e-8 {
		t.Errorf("ΣFy = %g, ΣM = %g", fy, mz)
	}

	// dM/dx ≈ V away from discontinuities
	const h = 1e-6
	for _, x := range []float64{1, 2.5, 4, 5.5, 8, 11} {
		m1 := must[float64](t)(a.Moment(x + h))
		m0 := must[float64](t)(a.Moment(x - h))
		v := must[float64](t)(a.Shear(x))
		if math.Abs((m1-m0)/(2*h)-v) > 1e-4 {
			t.Errorf("dM/dx(%g) = %g, V = %g", x, (m1-m0)/(2*h), v)
		}
	}
}

func TestLinearity(t *testing.T) {
	build := func(k float64) *Analysis {
		a, r := setup(t, 10)
		must[load.Handle](t)(r.AddSupport(0, load.Pin))
		must[load.Handle](t)(r.AddSupport(8, load.Roller))
		must[load.Handle](t)(r.AddLoad(load.Force(3, -100).Scale(k)))
		must[load.Handle](t)(r.AddLoad(load.Uniform(4, 10, -5).Scale(k)))
		return a
	}
	a1, a3 := build(1), build(3)
	for _, q := range []Quantity{Shear, Moment, Slope, Deflection} {
		for _, x := range []float64{0, 2.5, 6, 10} {
			v1 := must[float64](t)(a1.Value(q, x))
			v3 := must[float64](t)(a3.Value(q, x))
			if !near(v3, 3*v1, 1e-9) {
				t.Errorf("%s(%g): %g vs 3×%g", q, x, v3, v1)
			}
		}
	}
}

func TestErrors(t *testing.T) {
	a, r := setup(t, 10)
	if _, err := r.AddLoad(load.Force(-1, 10)); !errors.Is(err, errs.ErrInvalidPosition) {
		t.Errorf("AddLoad(-1) err = %v", err)
	}

	must[load.Handle](t)(r.AddSupport(5, load.Roller))
	must[load.Handle](t)(r.AddLoad(load.Force(2, -1)))
	err := a.Solve()
	if !errors.Is(err, errs.ErrUnderconstrained) {
		t.Fatalf("single roller err = %v", err)
	}
	if _, err2 := a.Moment(3); err2 != err {
		t.Errorf("cached error not returned: %v", err2)
	}

	must[load.Handle](t)(r.AddSupport(0, load.Pin))
	if err := a.Solve(); err != nil {
		t.Fatalf("after adding a pin: %v", err)
	}
	if _, err := a.Moment(10.5); !errors.Is(err, errs.ErrInvalidPosition) {
		t.Errorf("query outside err = %v", err)
	}
	if _, _, err := a.Extremum(Moment, 6, 2); !errors.Is(err, errs.ErrInvalidPosition) {
		t.Errorf("reversed interval err = %v", err)
	}
	if _, err := a.TwistAngle(3); !errors.Is(err, errs.ErrInvalidGeometry) {
		t.Errorf("twist without GJ err = %v", err)
	}
	if _, err := a.StressAt(3, 0); !errors.Is(err, errs.ErrInvalidQuery) {
		t.Errorf("stress without section err = %v", err)
	}
}

func TestCacheInvalidation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m, err := member.New(10, testE, testI)
	if err != nil {
		t.Fatal(err)
	}
	r := load.NewRegistry(10)
	a := New(m, r, WithLogger(logger))
	must[load.Handle](t)(r.AddSupport(0, load.Pin))
	must[load.Handle](t)(r.AddSupport(10, load.Roller))
	f := must[load.Handle](t)(r.AddLoad(load.Force(5, -1000)))

	m1 := must[float64](t)(a.Moment(5))
	must[float64](t)(a.Shear(2))
	if n := strings.Count(buf.String(), "analysis rebuilt"); n != 1 {
		t.Fatalf("rebuilt %d times, want 1", n)
	}

	r.Remove(f)
	must[load.Handle](t)(r.AddLoad(load.Force(5, -2000)))
	m2 := must[float64](t)(a.Moment(5))
	if !near(m2, 2*m1, 1e-12) {
		t.Errorf("stale moment after mutation: %g", m2)
	}
	if n := strings.Count(buf.String(), "analysis rebuilt"); n != 2 {
		t.Errorf("rebuilt %d times, want 2", n)
	}
}

func TestShaftAndStress(t *testing.T) {
	c, err := section.NewCircle(20)
	if err != nil {
		t.Fatal(err)
	}
	g := member.ShearModulus(testE, 0.25)
	m, err := member.New(1000, testE, 0, member.WithShape(c), member.WithShear(g, 0))
	if err != nil {
		t.Fatal(err)
	}
	r := load.NewRegistry(1000)
	a := New(m, r)
	must[load.Handle](t)(r.AddSupport(0, load.Fixed))
	must[load.Handle](t)(r.AddSupport(1000, load.Free))
	must[load.Handle](t)(r.AddLoad(load.Torque(1000, 5e5)))
	must[load.Handle](t)(r.AddLoad(load.Force(1000, -100)))
	must[load.Handle](t)(r.AddLoad(load.AngledForce(1000, 300, 0)))

	j := c.PolarInertia()
	if got := must[float64](t)(a.TwistAngle(1000)); !near(got, 5e5*1000/(g*j), 1e-9) {
		t.Errorf("φ(L) = %g", got)
	}
	if got := must[float64](t)(a.Elongation(1000)); !near(got, 300*1000/(testE*c.Area()), 1e-9) {
		t.Errorf("u(L) = %g", got)
	}
	tau, err := a.TorsionStressAt(500, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !near(tau.Tau, 5e5*20/j, 1e-9) {
		t.Errorf("τ = %g", tau.Tau)
	}

	// top fibre at the root: hogging moment −100·1000 gives tension
	s, err := a.StressAt(0, 20)
	if err != nil {
		t.Fatal(err)
	}
	want := 300/c.Area() + 100*1000*20/c.Inertia()
	if !near(s.Sigma, want, 1e-9) {
		t.Errorf("σ = %g, want %g", s.Sigma, want)
	}
	if _, err := a.StressAt(0, 25); !errors.Is(err, errs.ErrInvalidQuery) {
		t.Errorf("outside section err = %v", err)
	}
}

func TestExtremumIncludesRightEndJump(t *testing.T) {
	// overhang: the reaction at 6 flips the shear from −66.7 to +100
	a, r := setup(t, 10)
	must[load.Handle](t)(r.AddSupport(0, load.Pin))
	must[load.Handle](t)(r.AddSupport(6, load.Roller))
	must[load.Handle](t)(r.AddLoad(load.Force(10, -100)))

	if v := must[float64](t)(a.Shear(6)); !near(v, 100, 1e-9) {
		t.Fatalf("V(6) = %g, want 100", v)
	}
	x, v, err := a.Extremum(Shear, 0, 6)
	if err != nil {
		t.Fatal(err)
	}
	if !near(x, 6, 1e-12) || !near(v, 100, 1e-9) {
		t.Errorf("extremum on [0, 6] = (%g, %g), want (6, 100)", x, v)
	}
	x, v, err = a.Extremum(Moment, 0, 6)
	if err != nil || !near(x, 6, 1e-12) || !near(v, -400, 1e-9) {
		t.Errorf("moment extremum = (%g, %g, %v), want (6, -400)", x, v, err)
	}
}

func TestSteppedSectionStress(t *testing.T) {
	base, err := section.NewRectangle(100, 200)
	if err != nil {
		t.Fatal(err)
	}
	deep, err := section.NewRectangle(100, 400)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		seg  member.Segment
	}{
		{"own shape", member.Segment{Start: 0, End: 5, Shape: deep}},
		{"properties only", member.Segment{Start: 0, End: 5, I: deep.Inertia(), A: deep.Area()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := member.New(10, testE, 0, member.WithShape(base), member.WithSegments(tt.seg))
			if err != nil {
				t.Fatal(err)
			}
			r := load.NewRegistry(10)
			a := New(m, r)
			must[load.Handle](t)(r.AddSupport(0, load.Pin))
			must[load.Handle](t)(r.AddSupport(10, load.Roller))
			must[load.Handle](t)(r.AddLoad(load.Force(5, -1000)))

			// outside the segment the base rectangle applies: 1.5·V/A
			s, err := a.StressAt(8, 0)
			if err != nil {
				t.Fatal(err)
			}
			if !near(s.Tau, -1.5*500/base.Area(), 1e-9) {
				t.Errorf("τ(8, 0) = %g", s.Tau)
			}

			if tt.seg.Shape == nil {
				if _, err := a.StressAt(2, 0); !errors.Is(err, errs.ErrInvalidQuery) {
					t.Errorf("StressAt in a shapeless segment err = %v, want ErrInvalidQuery", err)
				}
				return
			}
			s, err = a.StressAt(2, 0)
			if err != nil {
				t.Fatal(err)
			}
			if !near(s.Tau, 1.5*500/deep.Area(), 1e-9) {
				t.Errorf("τ(2, 0) = %g, want %g", s.Tau, 1.5*500/deep.Area())
			}
			// the deep fibre exists only inside the segment
			s, err = a.StressAt(2, 150)
			if err != nil {
				t.Fatal(err)
			}
			if want := -1000.0 * 150 / deep.Inertia(); !near(s.Sigma, want, 1e-9) {
				t.Errorf("σ(2, 150) = %g, want %g", s.Sigma, want)
			}
			if _, err := a.StressAt(8, 150); !errors.Is(err, errs.ErrInvalidQuery) {
				t.Errorf("StressAt(8, 150) err = %v, want ErrInvalidQuery", err)
			}
		})
	}
}
