package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-7*math.Max(1, math.Abs(b))
}

type support struct {
	x    float64
	kind load.SupportKind
}

func solve(t *testing.T, m *member.Member, sups []support, loads ...load.Load) (Result, []load.Handle, error) {
	t.Helper()
	r := load.NewRegistry(m.Length())
	var hs []load.Handle
	for _, s := range sups {
		h, err := r.AddSupport(s.x, s.kind)
		if err != nil {
			t.Fatal(err)
		}
		hs = append(hs, h)
	}
	res, err := Solve(m, r.Supports(), loads)
	return res, hs, err
}

func beam(t *testing.T, l float64, opts ...member.Option) *member.Member {
	t.Helper()
	m, err := member.New(l, 200e3, 1e8, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSolve_Determinate(t *testing.T) {
	t.Run("simple span", func(t *testing.T) {
		res, hs, err := solve(t, beam(t, 10), []support{{0, load.Pin}, {10, load.Roller}}, load.Force(5, -1000))
		if err != nil {
			t.Fatal(err)
		}
		for _, h := range hs {
			re, _ := res.Reaction(h)
			if !near(re.Fy, 500) || re.Fx != 0 || re.Mz != 0 {
				t.Errorf("reaction %d = %+v", h, re)
			}
		}
		if res.Degree != 0 {
			t.Errorf("degree = %d", res.Degree)
		}
	})

	t.Run("cantilever", func(t *testing.T) {
		const w, l = 3.0, 4.0
		res, hs, err := solve(t, beam(t, l), []support{{0, load.Fixed}, {l, load.Free}}, load.Uniform(0, l, -w))
		if err != nil {
			t.Fatal(err)
		}
		re, _ := res.Reaction(hs[0])
		if !near(re.Fy, w*l) || !near(re.Mz, w*l*l/2) {
			t.Errorf("fixed reaction = %+v", re)
		}
		free, _ := res.Reaction(hs[1])
		if free.Fy != 0 || free.Mz != 0 {
			t.Errorf("free end carries %+v", free)
		}
	})

	t.Run("angled load on pin and roller", func(t *testing.T) {
		res, hs, err := solve(t, beam(t, 6), []support{{0, load.Pin}, {6, load.Roller}}, load.AngledForce(2, 10, -30))
		if err != nil {
			t.Fatal(err)
		}
		pin, _ := res.Reaction(hs[0])
		roller, _ := res.Reaction(hs[1])
		if !near(pin.Fx, -10*math.Cos(math.Pi/6)) {
			t.Errorf("pin Fx = %g", pin.Fx)
		}
		if !near(pin.Fy+roller.Fy, 5) || !near(roller.Fy*6, 5*2) {
			t.Errorf("vertical reactions = %g, %g", pin.Fy, roller.Fy)
		}
	})
}

func TestSolve_Indeterminate(t *testing.T) {
	t.Run("propped cantilever", func(t *testing.T) {
		const p, l = 16.0, 8.0
		res, hs, err := solve(t, beam(t, l), []support{{0, load.Fixed}, {l, load.Roller}}, load.Force(l/2, -p))
		if err != nil {
			t.Fatal(err)
		}
		roller, _ := res.Reaction(hs[1])
		if !near(roller.Fy, 5*p/16) {
			t.Errorf("roller = %g, want %g", roller.Fy, 5*p/16)
		}
		fixed, _ := res.Reaction(hs[0])
		if !near(fixed.Fy, 11*p/16) || !near(fixed.Mz, 3*p*l/16) {
			t.Errorf("fixed = %+v", fixed)
		}
		if res.Degree != 1 || len(res.Redundants) != 1 || res.Redundants[0].DOF != load.Transverse || res.Redundants[0].Position != l {
			t.Errorf("redundants = %v", res.Redundants)
		}
	})

	t.Run("fixed-fixed uniform", func(t *testing.T) {
		const w, l = 2.0, 6.0
		res, hs, err := solve(t, beam(t, l), []support{{0, load.Fixed}, {l, load.Fixed}}, load.Uniform(0, l, -w))
		if err != nil {
			t.Fatal(err)
		}
		left, _ := res.Reaction(hs[0])
		right, _ := res.Reaction(hs[1])
		if !near(left.Fy, w*l/2) || !near(right.Fy, w*l/2) {
			t.Errorf("shears = %g, %g", left.Fy, right.Fy)
		}
		if !near(left.Mz, w*l*l/12) || !near(right.Mz, -w*l*l/12) {
			t.Errorf("moments = %g, %g", left.Mz, right.Mz)
		}
	})

	t.Run("two equal spans", func(t *testing.T) {
		const w, l = 1.0, 5.0
		res, hs, err := solve(t, beam(t, 2*l), []support{{0, load.Pin}, {l, load.Roller}, {2 * l, load.Roller}},
			load.Uniform(0, 2*l, -w))
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{3 * w * l / 8, 10 * w * l / 8, 3 * w * l / 8}
		for i, h := range hs {
			re, _ := res.Reaction(h)
			if !near(re.Fy, want[i]) {
				t.Errorf("support %d Fy = %g, want %g", i, re.Fy, want[i])
			}
		}
	})

	t.Run("axial pin-pin", func(t *testing.T) {
		m := beam(t, 3, member.WithArea(100))
		res, hs, err := solve(t, m, []support{{0, load.Pin}, {3, load.Pin}}, load.AngledForce(1, 6, 0))
		if err != nil {
			t.Fatal(err)
		}
		left, _ := res.Reaction(hs[0])
		right, _ := res.Reaction(hs[1])
		if !near(left.Fx, -4) || !near(right.Fx, -2) {
			t.Errorf("axial reactions = %g, %g", left.Fx, right.Fx)
		}
	})

	t.Run("torsion fixed-fixed", func(t *testing.T) {
		m := beam(t, 3, member.WithShear(80e3, 5e7))
		res, hs, err := solve(t, m, []support{{0, load.Fixed}, {3, load.Fixed}}, load.Torque(1, 6))
		if err != nil {
			t.Fatal(err)
		}
		left, _ := res.Reaction(hs[0])
		right, _ := res.Reaction(hs[1])
		if !near(left.Tx, -4) || !near(right.Tx, -2) {
			t.Errorf("torque reactions = %g, %g", left.Tx, right.Tx)
		}
	})
}

func TestSolve_Failures(t *testing.T) {
	tests := []struct {
		name  string
		sups  []support
		loads []load.Load
		want  error
	}{
		{"single roller", []support{{5, load.Roller}}, []load.Load{load.Force(5, -1)}, errs.ErrUnderconstrained},
		{"no supports", nil, nil, errs.ErrUnderconstrained},
		{"only free", []support{{0, load.Free}}, nil, errs.ErrUnderconstrained},
		{"coincident rollers", []support{{4, load.Roller}, {4, load.Roller}}, nil, errs.ErrOverconstrained},
		{"rollers only with axial load", []support{{0, load.Roller}, {10, load.Roller}},
			[]load.Load{load.AngledForce(5, 1, 0)}, errs.ErrUnderconstrained},
		{"torque without twist restraint", []support{{0, load.Pin}, {10, load.Roller}},
			[]load.Load{load.Torque(5, 1)}, errs.ErrUnderconstrained},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := solve(t, beam(t, 10), tt.sups, tt.loads...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSolve_EquilibriumClosure(t *testing.T) {
	loads := []load.Load{
		load.Linear(1, 7, -2, -8), load.Force(3, -40), load.Moment(8, 15), load.AngledForce(9, 12, 240),
	}
	res, _, err := solve(t, beam(t, 10),
		[]support{{0, load.Fixed}, {4, load.Roller}, {10, load.Pin}}, loads...)
	if err != nil {
		t.Fatal(err)
	}
	var fx, fy, mz float64
	for _, l := range append(loads, res.Loads()...) {
		x, y, m, _ := l.Resultant()
		fx, fy, mz = fx+x, fy+y, mz+m
	}
	if math.Abs(fx) > 1e-9 || math.Abs(fy) > 1e-9 || math.Abs(mz) > 1e-8 {
		t.Errorf("residual forces (%g, %g, %g)", fx, fy, mz)
	}
	if res.Degree != 3 {
		t.Errorf("degree = %d, want 3", res.Degree)
	}
}

func TestResidual(t *testing.T) {
	loads := []load.Load{load.Force(5, -1000), load.Torque(5, 200)}
	tests := []struct {
		name      string
		reactions []Reaction
		want      float64
	}{
		{"balanced", []Reaction{{Position: 0, Fy: 500, Tx: -200}, {Position: 10, Fy: 500}}, 0},
		// ΣFy = −100 against Σ|Fy| = 1900
		{"short vertical reaction", []Reaction{{Position: 0, Fy: 400, Tx: -200}, {Position: 10, Fy: 500}}, 100.0 / 1900},
		// ΣTx = 50 against Σ|Tx| = 350
		{"torque left over", []Reaction{{Position: 0, Fy: 500, Tx: -150}, {Position: 10, Fy: 500}}, 50.0 / 350},
		{"no reactions", nil, 1},
	}
	tol := member.DefaultConvention().Tolerance
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := residual(loads, tt.reactions)
			if !near(got, tt.want) {
				t.Errorf("residual = %g, want %g", got, tt.want)
			}
			if (got > tol) != (tt.want > 0) {
				t.Errorf("residual %g against tolerance %g", got, tol)
			}
		})
	}
}
