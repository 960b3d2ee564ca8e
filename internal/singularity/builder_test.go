package singularity

import (
	"math"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/load"
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestBuild_SimpleSpan(t *testing.T) {
	f := Build(10, []load.Load{
		load.Force(0, 500), load.Force(10, 500), load.Force(5, -1000),
	})
	tests := []struct {
		name      string
		got, want float64
	}{
		{"V(0)", f.Shear.At(0), 500},
		{"V(2)", f.Shear.At(2), 500},
		{"V(5)", f.Shear.At(5), -500},
		{"V(5-)", f.Shear.Left(5), 500},
		{"V(7)", f.Shear.At(7), -500},
		{"M(5)", f.Moment.At(5), 2500},
		{"M(2)", f.Moment.At(2), 1000},
		{"M(10)", f.Moment.At(10), 0},
	}
	for _, tt := range tests {
		if !near(tt.got, tt.want) {
			t.Errorf("%s = %g, want %g", tt.name, tt.got, tt.want)
		}
	}
}

func TestBuild_CantileverWithReactions(t *testing.T) {
	const w, l = 2.0, 6.0
	f := Build(l, []load.Load{
		load.Force(0, w*l),
		load.Moment(0, w*l*l/2),
		load.Uniform(0, l, -w),
	})
	if got := f.Moment.At(0); !near(got, -w*l*l/2) {
		t.Errorf("M(0) = %g, want %g", got, -w*l*l/2)
	}
	if got := f.Moment.At(l); !near(got, 0) {
		t.Errorf("M(L) = %g", got)
	}
	if got := f.Shear.At(l / 2); !near(got, w*l/2) {
		t.Errorf("V(L/2) = %g", got)
	}
	if got := f.Intensity.At(1); !near(got, -w) {
		t.Errorf("q(1) = %g", got)
	}
}

func TestBuild_DerivativeConsistency(t *testing.T) {
	loads := []load.Load{
		load.Force(0, 7), load.Linear(1, 4, -2, -6), load.Moment(5, 3), load.Force(8, -1),
	}
	f := Build(8, loads)
	const h = 1e-6
	for _, x := range []float64{0.5, 2, 3.7, 4.5, 6, 7.5} {
		dm := (f.Moment.At(x+h) - f.Moment.At(x-h)) / (2 * h)
		if math.Abs(dm-f.Shear.At(x)) > 1e-5 {
			t.Errorf("dM/dx(%g) = %g, V = %g", x, dm, f.Shear.At(x))
		}
		dv := (f.Shear.At(x+h) - f.Shear.At(x-h)) / (2 * h)
		if math.Abs(dv-f.Intensity.At(x)) > 1e-5 {
			t.Errorf("dV/dx(%g) = %g, q = %g", x, dv, f.Intensity.At(x))
		}
	}
	if got := f.Moment.Jump(5); !near(got, -3) {
		t.Errorf("moment jump at couple = %g, want -3", got)
	}
}

func TestBuild_AxialAndTorque(t *testing.T) {
	f := Build(4, []load.Load{
		load.AngledForce(0, 10, 180), // reaction pulling left
		load.AngledForce(4, 10, 0),   // applied tension
		load.Torque(0, -5),
		load.Torque(2, 5),
	})
	if got := f.Axial.At(2); !near(got, 10) {
		t.Errorf("N(2) = %g, want 10", got)
	}
	if got := f.Torque.At(1); !near(got, 5) {
		t.Errorf("T(1) = %g, want 5", got)
	}
	if got := f.Torque.At(3); !near(got, 0) {
		t.Errorf("T(3) = %g, want 0", got)
	}
	if got := f.Shear.At(2); got != 0 {
		t.Errorf("axial forces leaked into V: %g", got)
	}
}

func TestBreaks(t *testing.T) {
	got := Breaks(10, []load.Load{load.Uniform(2, 6, 1), load.Force(6, 1)}, 10, 3)
	want := []float64{0, 2, 3, 6, 10}
	if len(got) != len(want) {
		t.Fatalf("breaks = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("breaks = %v, want %v", got, want)
		}
	}
}
