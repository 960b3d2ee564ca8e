package envelope

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/errs"
	"github.com/alexiusacademia/gobeam/internal/load"
	"github.com/alexiusacademia/gobeam/internal/member"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

func simpleSpan(t *testing.T) (*member.Member, *load.Registry) {
	t.Helper()
	m, err := member.New(10, 200e3, 1e8)
	if err != nil {
		t.Fatal(err)
	}
	r := load.NewRegistry(10)
	for _, s := range []struct {
		x float64
		k load.SupportKind
	}{{0, load.Pin}, {10, load.Roller}} {
		if _, err := r.AddSupport(s.x, s.k); err != nil {
			t.Fatal(err)
		}
	}
	return m, r
}

func TestRun_Governing(t *testing.T) {
	m, r := simpleSpan(t)
	dead := load.Uniform(0, 10, -2)
	live := load.Uniform(0, 10, -3)
	live.Case = nscp.Live
	for _, l := range []load.Load{dead, live} {
		if _, err := r.AddLoad(l); err != nil {
			t.Fatal(err)
		}
	}

	res, err := New(m, r, nscp.LoadCombinations).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != len(nscp.LoadCombinations) {
		t.Fatalf("entries = %d", len(res.Entries))
	}
	best, peak := res.Governing(analysis.Moment)
	if best.Combination.ID != "2" {
		t.Errorf("governing = %s, want 2", best.Combination.ID)
	}
	// 1.2·2 + 1.6·3 = 7.2 per length
	if want := 7.2 * 100 / 8; math.Abs(peak.Value-want) > 1e-9 || math.Abs(peak.X-5) > 1e-9 {
		t.Errorf("peak = %+v, want %g at 5", peak, want)
	}
	// the registry is untouched
	if got := r.Loads()[0].Load.StartIntensity; got != -2 {
		t.Errorf("registry mutated: %g", got)
	}
}

func TestRun_Errors(t *testing.T) {
	m, r := simpleSpan(t)
	snow := load.Force(5, -1)
	snow.Case = "S"
	if _, err := r.AddLoad(snow); err != nil {
		t.Fatal(err)
	}
	if _, err := New(m, r, nscp.SimplifiedCombinations).Run(context.Background()); err == nil {
		t.Error("expected error for unknown case")
	}

	m2, err := member.New(10, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	r2 := load.NewRegistry(10)
	if _, err := r2.AddSupport(5, load.Roller); err != nil {
		t.Fatal(err)
	}
	_, err = New(m2, r2, nscp.SimplifiedCombinations).Run(context.Background())
	if !errors.Is(err, errs.ErrUnderconstrained) {
		t.Errorf("err = %v, want ErrUnderconstrained", err)
	}
}
