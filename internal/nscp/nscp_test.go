package nscp

import (
	"math"
	"testing"
)

func TestFactor(t *testing.T) {
	lc, ok := Find(LoadCombinations, "2")
	if !ok {
		t.Fatal("combination 2 missing")
	}
	tests := map[string]float64{"": 1.2, "D": 1.2, "L": 1.6, "Lr": 0.5, "R": 0.5, "W": 0, "E": 0, "snow": 0}
	for c, want := range tests {
		if got := lc.Factor(c); got != want {
			t.Errorf("factor(%q) = %g, want %g", c, got, want)
		}
	}
	if _, ok := Find(SimplifiedCombinations, "9"); ok {
		t.Error("unexpected combination 9")
	}
	if KnownCase("snow") || !KnownCase("Lr") {
		t.Error("KnownCase mismatch")
	}
}

func TestMaterials(t *testing.T) {
	if got := Ec(25); math.Abs(got-23500) > 1e-9 {
		t.Errorf("Ec(25) = %g", got)
	}
	s := Steel(250)
	if math.Abs(s.G()-200000/2.6) > 1e-9 || !s.Ductile() {
		t.Errorf("steel = %+v, G = %g", s, s.G())
	}
	c, err := Preset("concrete", 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Fc != 21 || c.Ductile() || math.Abs(c.Ft-0.62*math.Sqrt(21)) > 1e-12 {
		t.Errorf("concrete = %+v", c)
	}
	if _, err := Preset("timber", 0); err == nil {
		t.Error("expected error for unknown material")
	}
}
