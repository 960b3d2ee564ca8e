package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/plot/plotter"

	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/alexiusacademia/gobeam/internal/stress"
)

func parabola() Series {
	s := Series{Title: "Bending moment", Symbol: "M", Unit: "N·mm"}
	for i := 0; i <= 10; i++ {
		x := float64(i)
		s.X = append(s.X, x)
		s.Y = append(s.Y, x*(10-x))
	}
	return s
}

func TestSeriesPeak(t *testing.T) {
	x, y := parabola().Peak()
	if x != 5 || y != 25 {
		t.Errorf("peak = (%g, %g), want (5, 25)", x, y)
	}
}

func TestPlot(t *testing.T) {
	out := Plot(parabola(), 40, 8)
	if !strings.Contains(out, "Bending moment (N·mm)") {
		t.Errorf("caption missing:\n%s", out)
	}
	if !strings.Contains(out, "peak M = 25 at x = 5") {
		t.Errorf("peak missing:\n%s", out)
	}
	if Plot(Series{}, 40, 8) != "" {
		t.Error("empty series should render nothing")
	}
	flatSeries := Series{Title: "zero", X: []float64{0, 1, 2}, Y: []float64{0, 0, 0}}
	if Plot(flatSeries, 20, 4) == "" {
		t.Error("flat series should still render")
	}
}

func TestDrawStressProfile(t *testing.T) {
	out := DrawStressProfile([]StressRow{{Y: -100, Sigma: 10}, {Y: 0, Sigma: 0}, {Y: 100, Sigma: -10}}, 20)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, "y=  -100.00") || !strings.Contains(last, "│██████████") {
		t.Errorf("bottom fibre should be in tension: %q", last)
	}
	if !strings.Contains(out, "██████████│") {
		t.Errorf("top fibre should be in compression:\n%s", out)
	}
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("Reactions", []string{"R1 = 5", "σ max = 12.5"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	width := len([]rune(lines[0]))
	for _, l := range lines {
		if len([]rune(l)) != width {
			t.Errorf("ragged box line %q", l)
		}
	}
}

func TestClipSection(t *testing.T) {
	square := plotter.XYs{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	top := clipSection(square, 0, true)
	if len(top) != 4 {
		t.Fatalf("top = %v", top)
	}
	for _, pt := range top {
		if pt.Y < 0 {
			t.Errorf("point below the cut: %v", pt)
		}
	}
	bottom := clipSection(square, 0, false)
	for _, pt := range bottom {
		if pt.Y > 0 {
			t.Errorf("point above the cut: %v", pt)
		}
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	rect, err := section.NewRectangle(200, 400)
	if err != nil {
		t.Fatal(err)
	}
	tube, err := section.NewAnnulus(50, 40)
	if err != nil {
		t.Fatal(err)
	}

	files := map[string]func(string) error{
		"moment.png": func(f string) error { return ExportDiagram(parabola(), f) },
		"mohr.svg":   func(f string) error { return ExportMohr(stress.Plane{SX: 80, SY: -20, TXY: 30}, f) },
		"rect.png":   func(f string) error { return ExportSection(rect, 1e6, f) },
		"tube.png":   func(f string) error { return ExportSection(tube, 0, f) },
	}
	for name, export := range files {
		path := filepath.Join(dir, "out", name)
		if err := export(path); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	if err := ExportDiagram(Series{X: []float64{0}, Y: []float64{0}}, filepath.Join(dir, "x.png")); err == nil {
		t.Error("expected error for a single station")
	}
}
