package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gobeam/internal/section"
	"github.com/alexiusacademia/gobeam/internal/stress"
)

var (
	outlineColor = color.Black
	curveColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	fillColor    = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	axisColor    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	pointColor   = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// ExportDiagram writes a line plot of s. The format follows the file
// extension and defaults to PNG.
func ExportDiagram(s Series, filename string) error {
	if len(s.X) < 2 {
		return fmt.Errorf("diagram %q needs at least two stations", s.Title)
	}
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = s.Symbol
	if s.Unit != "" {
		p.Y.Label.Text = fmt.Sprintf("%s (%s)", s.Symbol, s.Unit)
	}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(s.X))
	for i := range s.X {
		pts[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
	}
	// close the curve on the axis so the area reads as a diagram
	area := append(plotter.XYs{{X: s.X[0], Y: 0}}, pts...)
	area = append(area, plotter.XY{X: s.X[len(s.X)-1], Y: 0})
	fill, err := plotter.NewPolygon(area)
	if err != nil {
		return err
	}
	fill.Color = fillColor
	fill.LineStyle.Width = 0
	p.Add(fill)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = curveColor
	p.Add(line)

	x, y := s.Peak()
	peak, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return err
	}
	peak.GlyphStyle.Color = axisColor
	peak.GlyphStyle.Radius = vg.Points(4)
	peak.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(peak)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{fmt.Sprintf("%.4g", y)},
	})
	if err != nil {
		return err
	}
	p.Add(lbl)

	return save(p, 8*vg.Inch, 4*vg.Inch, filename)
}

// ExportMohr draws Mohr's circle for a plane stress state.
func ExportMohr(ps stress.Plane, filename string) error {
	c := ps.Mohr()
	p := plot.New()
	p.Title.Text = "Mohr's Circle"
	p.X.Label.Text = "σ"
	p.Y.Label.Text = "τ"
	p.Add(plotter.NewGrid())

	const n = 120
	circle := make(plotter.XYs, n+1)
	for i := range circle {
		t := 2 * math.Pi * float64(i) / n
		circle[i] = plotter.XY{X: c.Center + c.Radius*math.Cos(t), Y: c.Radius * math.Sin(t)}
	}
	line, err := plotter.NewLine(circle)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = curveColor
	p.Add(line)

	// stresses on the x face and the y face
	faces := plotter.XYs{{X: ps.SX, Y: ps.TXY}, {X: ps.SY, Y: -ps.TXY}}
	diameter, err := plotter.NewLine(faces)
	if err != nil {
		return err
	}
	diameter.LineStyle.Color = axisColor
	diameter.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(diameter)

	s1, s2, _ := ps.Principal()
	points, err := plotter.NewScatter(append(faces, plotter.XY{X: s1}, plotter.XY{X: s2}))
	if err != nil {
		return err
	}
	points.GlyphStyle.Color = pointColor
	points.GlyphStyle.Radius = vg.Points(4)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(points)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: []plotter.XY{faces[0], faces[1], {X: s1}, {X: s2}},
		Labels: []string{
			"x", "y",
			fmt.Sprintf("σ1=%.3g", s1),
			fmt.Sprintf("σ2=%.3g", s2),
		},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	// equal axes keep the circle round
	p.X.Min, p.X.Max = c.Center-1.1*c.Radius-1e-9, c.Center+1.1*c.Radius+1e-9
	p.Y.Min, p.Y.Max = -1.1*c.Radius-1e-9, 1.1*c.Radius+1e-9

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// ExportSection draws the outline of s about its centroid with the
// neutral axis. The compression side for a bending moment m is shaded.
func ExportSection(s section.Shape, m float64, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Section: %s", s.Name())
	p.X.Label.Text = "z"
	p.Y.Label.Text = "y"

	rings := outline(s)
	if len(rings) == 0 {
		return fmt.Errorf("cannot draw section %q", s.Name())
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, ring := range rings {
		closed := append(append(plotter.XYs{}, ring...), ring[0])
		line, err := plotter.NewLine(closed)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = outlineColor
		p.Add(line)
		for _, pt := range ring {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		}
	}

	if m != 0 {
		// positive moment compresses the fibres above the axis
		zone := clipSection(rings[0], 0, m > 0)
		if len(zone) >= 3 {
			poly, err := plotter.NewPolygon(zone)
			if err == nil {
				poly.Color = fillColor
				poly.LineStyle.Color = curveColor
				p.Add(poly)
			}
		}
	}

	pad := 0.1 * (maxX - minX)
	na, err := plotter.NewLine(plotter.XYs{{X: minX - pad, Y: 0}, {X: maxX + pad, Y: 0}})
	if err != nil {
		return err
	}
	na.LineStyle.Width = vg.Points(1.5)
	na.LineStyle.Color = axisColor
	na.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(na)

	lbl, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: maxX + pad, Y: 0}},
		Labels: []string{"N.A."},
	})
	if err != nil {
		return err
	}
	p.Add(lbl)

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// outline returns the rings of s shifted so the centroid is the origin.
func outline(s section.Shape) []plotter.XYs {
	switch v := s.(type) {
	case *section.Polygon:
		cx, cy := v.Centroid()
		shift := func(ring []section.Point) plotter.XYs {
			out := make(plotter.XYs, len(ring))
			for i, pt := range ring {
				out[i] = plotter.XY{X: pt.X - cx, Y: pt.Y - cy}
			}
			return out
		}
		rings := []plotter.XYs{shift(v.Vertices)}
		for _, h := range v.Holes {
			rings = append(rings, shift(h))
		}
		return rings
	case *section.Circle:
		return []plotter.XYs{circleRing(v.Radius)}
	case *section.Annulus:
		return []plotter.XYs{circleRing(v.Outer), circleRing(v.Inner)}
	}
	return nil
}

func circleRing(r float64) plotter.XYs {
	const n = 72
	out := make(plotter.XYs, n)
	for i := range out {
		t := 2 * math.Pi * float64(i) / n
		out[i] = plotter.XY{X: r * math.Cos(t), Y: r * math.Sin(t)}
	}
	return out
}

// clipSection keeps the part of a ring above (or below) the line y = clipY.
func clipSection(vertices plotter.XYs, clipY float64, above bool) plotter.XYs {
	if len(vertices) < 3 {
		return nil
	}
	inside := func(pt plotter.XY) bool {
		if above {
			return pt.Y >= clipY
		}
		return pt.Y <= clipY
	}

	var result plotter.XYs
	n := len(vertices)
	for i := 0; i < n; i++ {
		curr := vertices[i]
		next := vertices[(i+1)%n]

		if inside(curr) {
			result = append(result, curr)
		}
		if inside(curr) != inside(next) {
			t := (clipY - curr.Y) / (next.Y - curr.Y)
			result = append(result, plotter.XY{X: curr.X + t*(next.X-curr.X), Y: clipY})
		}
	}
	return result
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
