package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/section"
)

var (
	sectionFile   string
	sectionSpec   section.Spec
	sectionMoment float64
	sectionFibres int
	sectionExport string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Geometric properties of a cross-section",
	Long: `Compute the area, centroid, second moments and section modulus of a
cross-section, either from flags or from a JSON file.

Polygonal sections such as T-beams, L-beams or any outline with holes
are defined in a JSON file:
{
  "shape": "polygon",
  "name": "T-Beam Section",
  "vertices": [
    {"x": 0, "y": 0},
    {"x": 300, "y": 0},
    {"x": 300, "y": 400},
    {"x": 600, "y": 400},
    {"x": 600, "y": 500},
    {"x": 0, "y": 500}
  ]
}

Examples:
  gobeam section --shape rectangle --width 300 --height 500
  gobeam section --shape annulus --radius 50 --inner-radius 40
  gobeam section -f t-beam.json --fibres 11 -o t-beam.png`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "Path to section JSON file")
	sectionCmd.Flags().StringVar(&sectionSpec.Shape, "shape", "rectangle", "Shape: rectangle, i, circle, annulus")
	sectionCmd.Flags().Float64VarP(&sectionSpec.Width, "width", "b", 0, "Rectangle width")
	sectionCmd.Flags().Float64Var(&sectionSpec.Height, "height", 0, "Rectangle height")
	sectionCmd.Flags().Float64VarP(&sectionSpec.Depth, "depth", "d", 0, "I-shape depth")
	sectionCmd.Flags().Float64Var(&sectionSpec.FlangeWidth, "bf", 0, "I-shape flange width")
	sectionCmd.Flags().Float64Var(&sectionSpec.FlangeThickness, "tf", 0, "I-shape flange thickness")
	sectionCmd.Flags().Float64Var(&sectionSpec.WebThickness, "tw", 0, "I-shape web thickness")
	sectionCmd.Flags().Float64VarP(&sectionSpec.Radius, "radius", "r", 0, "Circle or annulus outer radius")
	sectionCmd.Flags().Float64Var(&sectionSpec.InnerRadius, "inner-radius", 0, "Annulus inner radius")

	sectionCmd.Flags().IntVar(&sectionFibres, "fibres", 0, "Tabulate width and first moment Q at this many fibres")
	sectionCmd.Flags().Float64VarP(&sectionMoment, "moment", "m", 0, "Bending moment used to shade the compression zone")
	sectionCmd.Flags().StringVarP(&sectionExport, "output", "o", "", "Export section drawing to file (png, svg, pdf)")
}

func runSection(cmd *cobra.Command, args []string) error {
	var shape section.Shape
	var err error
	if sectionFile != "" {
		shape, err = section.LoadFromFile(sectionFile)
	} else {
		shape, err = sectionSpec.Build()
	}
	if err != nil {
		return fmt.Errorf("building section: %w", err)
	}
	props := section.CalculateProperties(shape)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     CROSS-SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Section:\t%s\n", props.Name)
	fmt.Fprintf(w, "  Width:\t%.4g\n", props.Width)
	fmt.Fprintf(w, "  Height:\t%.4g\n", props.Height)
	fmt.Fprintf(w, "  Area (A):\t%.6g\n", props.Area)
	if p, ok := shape.(*section.Polygon); ok {
		cx, cy := p.Centroid()
		fmt.Fprintf(w, "  Centroid:\t(%.4g, %.4g)\n", cx, cy)
	}
	fmt.Fprintf(w, "  Fibre distances:\t%.4g below, %.4g above\n", -props.Bottom, props.Top)
	w.Flush()
	fmt.Println()

	fmt.Println("SECOND MOMENTS (about the centroid):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ixx:\t%.6g\n", props.Ixx)
	fmt.Fprintf(w, "  Iyy:\t%.6g\n", props.Iyy)
	fmt.Fprintf(w, "  Ixy:\t%.6g\n", props.Ixy)
	fmt.Fprintf(w, "  Polar (Ixx + Iyy):\t%.6g\n", props.J)
	w.Flush()
	fmt.Println()

	lines := []string{
		fmt.Sprintf("S = I/c = %.6g", props.SectionModulus),
		fmt.Sprintf("Max radius = %.4g", shape.MaxRadius()),
	}
	if shape.Circular() {
		lines = append(lines, "Round section: torsion τ = T·r/J applies")
	} else {
		lines = append(lines, "Non-circular: no torsional stress")
	}
	fmt.Print(diagram.DrawSummaryBox("ELASTIC SECTION MODULUS", lines))
	fmt.Println()

	if sectionFibres > 1 {
		fmt.Println("FIBRES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "  y\twidth t\tQ\t\n")
		for i := sectionFibres - 1; i >= 0; i-- {
			y := props.Bottom + props.Height*float64(i)/float64(sectionFibres-1)
			fmt.Fprintf(w, "  %.4g\t%.4g\t%.6g\t\n", y, shape.Width(y), shape.FirstMoment(y))
		}
		w.Flush()
		fmt.Println()
	}

	if sectionExport != "" {
		if err := diagram.ExportSection(shape, sectionMoment, sectionExport); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Printf("  Section drawing exported to: %s\n\n", sectionExport)
	}
	return nil
}
