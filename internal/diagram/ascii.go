package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Series is one sampled diagram along the member.
type Series struct {
	Title  string
	Symbol string
	Unit   string
	X      []float64
	Y      []float64
}

// Peak returns the station with the largest |Y|.
func (s Series) Peak() (x, y float64) {
	for i, v := range s.Y {
		if i == 0 || math.Abs(v) > math.Abs(y) {
			x, y = s.X[i], v
		}
	}
	return x, y
}

// Plot renders the series as a terminal chart.
func Plot(s Series, width, height int) string {
	if len(s.Y) == 0 {
		return ""
	}
	caption := s.Title
	if s.Unit != "" {
		caption = fmt.Sprintf("%s (%s)", s.Title, s.Unit)
	}
	x, y := s.Peak()
	caption += fmt.Sprintf("  peak %s = %.4g at x = %.4g", s.Symbol, y, x)
	ys := s.Y
	if flat(ys) {
		// asciigraph needs a range to scale
		ys = append([]float64{}, ys...)
		ys[0] += 1e-9
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

func flat(ys []float64) bool {
	for _, v := range ys[1:] {
		if v != ys[0] {
			return false
		}
	}
	return true
}

// StressRow is the normal stress at one fibre.
type StressRow struct {
	Y     float64
	Sigma float64
}

// DrawStressProfile draws σ across the depth with the top fibre first.
// Compression bars point left.
func DrawStressProfile(rows []StressRow, width int) string {
	var sb strings.Builder
	var peak float64
	for _, r := range rows {
		peak = math.Max(peak, math.Abs(r.Sigma))
	}
	half := width / 2
	scale := 0.0
	if peak > 0 {
		scale = float64(half) / peak
	}

	sb.WriteString("\n")
	sb.WriteString("  NORMAL STRESS DISTRIBUTION\n")
	sb.WriteString("  ──────────────────────────\n\n")
	for i := len(rows) - 1; i >= 0; i-- {
		r := rows[i]
		n := int(math.Round(math.Abs(r.Sigma) * scale))
		left, right := strings.Repeat(" ", half), strings.Repeat(" ", half)
		if r.Sigma < 0 {
			left = strings.Repeat(" ", half-n) + strings.Repeat("█", n)
		} else {
			right = strings.Repeat("█", n) + strings.Repeat(" ", half-n)
		}
		sb.WriteString(fmt.Sprintf("  y=%9.2f %s│%s σ=%.3f\n", r.Y, left, right, r.Sigma))
	}
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad counts runes so that σ and τ do not skew the border.
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
