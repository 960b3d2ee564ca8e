package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/stress"
)

var (
	mohrSX          float64
	mohrSY          float64
	mohrTXY         float64
	mohrTheta       float64
	mohrYield       float64
	mohrTension     float64
	mohrCompression float64
	mohrPlot        string
)

var mohrCmd = &cobra.Command{
	Use:   "mohr",
	Short: "Transform a plane stress state and draw Mohr's circle",
	Long: `Compute principal stresses, maximum shear stress and the stresses
on a rotated element for a plane stress state.

A yield strength applies the von Mises criterion for ductile materials.
Ultimate tensile and compressive strengths apply Mohr's criterion for
brittle materials.

Examples:
  # Principal stresses of a combined state
  gobeam mohr --sx 80 --sy -20 --txy 30

  # Element rotated 30° with a yield check and a plot
  gobeam mohr --sx 80 --sy -20 --txy 30 --theta 30 --yield 250 --plot mohr.png`,
	RunE: runMohr,
}

func init() {
	rootCmd.AddCommand(mohrCmd)

	mohrCmd.Flags().Float64Var(&mohrSX, "sx", 0, "Normal stress σx")
	mohrCmd.Flags().Float64Var(&mohrSY, "sy", 0, "Normal stress σy")
	mohrCmd.Flags().Float64Var(&mohrTXY, "txy", 0, "Shear stress τxy")
	mohrCmd.Flags().Float64Var(&mohrTheta, "theta", 0, "Element rotation, counter-clockwise (degrees)")
	mohrCmd.Flags().Float64Var(&mohrYield, "yield", 0, "Yield strength for the von Mises check")
	mohrCmd.Flags().Float64Var(&mohrTension, "ult-tension", 0, "Ultimate tensile strength for the Mohr check")
	mohrCmd.Flags().Float64Var(&mohrCompression, "ult-compression", 0, "Ultimate compressive strength for the Mohr check")
	mohrCmd.Flags().StringVarP(&mohrPlot, "plot", "o", "", "Export Mohr's circle to file (png, svg, pdf)")
}

func runMohr(cmd *cobra.Command, args []string) error {
	p := stress.Plane{SX: mohrSX, SY: mohrSY, TXY: mohrTXY}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PLANE STRESS TRANSFORMATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT STATE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  σx:\t%.4g\n", p.SX)
	fmt.Fprintf(w, "  σy:\t%.4g\n", p.SY)
	fmt.Fprintf(w, "  τxy:\t%.4g\n", p.TXY)
	w.Flush()
	fmt.Println()

	if mohrTheta != 0 {
		r := p.Rotate(mohrTheta * math.Pi / 180)
		fmt.Printf("ROTATED ELEMENT (θ = %.4g°):\n", mohrTheta)
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  σx':\t%.4g\n", r.SX)
		fmt.Fprintf(w, "  σy':\t%.4g\n", r.SY)
		fmt.Fprintf(w, "  τx'y':\t%.4g\n", r.TXY)
		w.Flush()
		fmt.Println()
	}

	var material *nscp.Material
	if mohrYield > 0 || mohrTension > 0 {
		material = &nscp.Material{Name: "input", Fy: mohrYield, Ft: mohrTension, Fc: mohrCompression}
	}
	printPlane(p, material)

	if mohrPlot != "" {
		if err := diagram.ExportMohr(p, mohrPlot); err != nil {
			return fmt.Errorf("exporting Mohr's circle: %w", err)
		}
		fmt.Printf("  Mohr's circle exported to: %s\n\n", mohrPlot)
	}
	return nil
}

// printPlane reports principal values and, when a material is given, the
// failure check that suits it.
func printPlane(p stress.Plane, material *nscp.Material) {
	s1, s2, tp := p.Principal()
	tau, sAvg, ts := p.MaxInPlaneShear()
	c := p.Mohr()

	fmt.Println("PRINCIPAL STRESSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  σ1:\t%.4g\n", s1)
	fmt.Fprintf(w, "  σ2:\t%.4g\n", s2)
	fmt.Fprintf(w, "  Principal angle (θp):\t%.4g°\n", tp*180/math.Pi)
	fmt.Fprintf(w, "  Max in-plane shear (τmax):\t%.4g\n", math.Abs(tau))
	fmt.Fprintf(w, "  Normal stress on τmax planes:\t%.4g\n", sAvg)
	fmt.Fprintf(w, "  Shear angle (θs):\t%.4g°\n", ts*180/math.Pi)
	fmt.Fprintf(w, "  Absolute max shear:\t%.4g\n", p.AbsMaxShear())
	fmt.Fprintf(w, "  Mohr's circle:\tC = %.4g, R = %.4g\n", c.Center, c.Radius)
	fmt.Fprintf(w, "  von Mises stress:\t%.4g\n", p.VonMises())
	w.Flush()
	fmt.Println()

	if material == nil {
		return
	}
	var lines []string
	switch {
	case material.Ductile():
		ratio, ok := stress.VonMisesCheck(p, material.Fy)
		lines = append(lines,
			fmt.Sprintf("Criterion: von Mises (fy = %.4g)", material.Fy),
			fmt.Sprintf("Utilisation: %.3f  %s", ratio, verdict(ok)))
	case material.Ft > 0:
		ratio, ok := stress.MohrCheck(p, material.Ft, material.Fc)
		lines = append(lines,
			fmt.Sprintf("Criterion: Mohr (ft = %.4g, fc = %.4g)", material.Ft, material.Fc),
			fmt.Sprintf("Utilisation: %.3f  %s", ratio, verdict(ok)))
	default:
		return
	}
	fmt.Print(diagram.DrawSummaryBox("FAILURE CHECK - "+material.Name, lines))
	fmt.Println()
}

func verdict(ok bool) string {
	if ok {
		return "✓ SAFE"
	}
	return "✗ FAILS"
}
