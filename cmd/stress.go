package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/nscp"
	"github.com/alexiusacademia/gobeam/internal/stress"
)

var (
	stressX       float64
	stressY       float64
	stressR       float64
	stressProfile int
	stressPlot    string
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Normal and shear stress at a point of a member",
	Long: `Evaluate the internal forces at a station and the resulting stresses
at a fibre of the cross-section.

--y selects a fibre height above the neutral axis and gives
σ = N/A - M·y/I with the transverse shear τ = V·Q/(I·t). --r selects a
radius on a round section and gives the torsional shear τ = T·r/J.

The member material decides the failure check: von Mises for steel,
Mohr's criterion for concrete.

Examples:
  gobeam stress --preset cantilever --x 0 --y 150
  gobeam stress --preset shaft --x 300 --r 30
  gobeam stress -f beam.yaml --x 3000 --y -200 --profile 11`,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)
	addModelFlags(stressCmd)

	stressCmd.Flags().Float64Var(&stressX, "x", 0, "Station along the member")
	stressCmd.Flags().Float64Var(&stressY, "y", 0, "Fibre height above the neutral axis")
	stressCmd.Flags().Float64Var(&stressR, "r", math.NaN(), "Radius for torsional shear on round sections")
	stressCmd.Flags().IntVar(&stressProfile, "profile", 0, "Draw σ over this many fibres across the depth")
	stressCmd.Flags().StringVarP(&stressPlot, "plot", "o", "", "Export Mohr's circle to file (png, svg, pdf)")
}

func runStress(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel()
	if err != nil {
		return err
	}
	a := analysis.New(model.Member, model.Registry)

	f, err := a.Forces(stressX)
	if err != nil {
		return err
	}
	var s stress.Stress
	point := fmt.Sprintf("y = %.4g", stressY)
	if !math.IsNaN(stressR) {
		s, err = a.TorsionStressAt(stressX, stressR)
		point = fmt.Sprintf("r = %.4g", stressR)
	} else {
		s, err = a.StressAt(stressX, stressY)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     STRESS AT x = %.4g, %s\n", stressX, point)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INTERNAL FORCES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Axial force (N):\t%.5g\n", clean(f.N))
	fmt.Fprintf(w, "  Shear force (V):\t%.5g\n", clean(f.V))
	fmt.Fprintf(w, "  Bending moment (M):\t%.5g\n", clean(f.M))
	fmt.Fprintf(w, "  Torque (T):\t%.5g\n", clean(f.T))
	w.Flush()
	fmt.Println()

	fmt.Println("STRESSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Normal stress (σ):\t%.5g\n", clean(s.Sigma))
	fmt.Fprintf(w, "  Shear stress (τ):\t%.5g\n", clean(s.Tau))
	w.Flush()
	fmt.Println()

	var material *nscp.Material
	if cfg.Member.Material != "" {
		m, err := nscp.Preset(cfg.Member.Material, cfg.Member.Fc)
		if err != nil {
			return err
		}
		material = &m
	}
	printPlane(s.Plane(), material)

	if stressProfile > 1 {
		rows, err := profile(a, stressX, stressProfile)
		if err != nil {
			return err
		}
		fmt.Println(diagram.DrawStressProfile(rows, 40))
	}

	if stressPlot != "" {
		if err := diagram.ExportMohr(s.Plane(), stressPlot); err != nil {
			return fmt.Errorf("exporting Mohr's circle: %w", err)
		}
		fmt.Printf("  Mohr's circle exported to: %s\n\n", stressPlot)
	}
	return nil
}

func profile(a *analysis.Analysis, x float64, n int) ([]diagram.StressRow, error) {
	shape, err := a.Member().ShapeAt(x)
	if err != nil {
		return nil, err
	}
	if shape == nil {
		return nil, fmt.Errorf("member has no cross-section")
	}
	bottom, top := shape.Extent()
	rows := make([]diagram.StressRow, n)
	for i := range rows {
		y := bottom + (top-bottom)*float64(i)/float64(n-1)
		s, err := a.StressAt(x, y)
		if err != nil {
			return nil, err
		}
		rows[i] = diagram.StressRow{Y: y, Sigma: s.Sigma}
	}
	return rows, nil
}
