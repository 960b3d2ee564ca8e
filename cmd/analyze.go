package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/analysis"
	"github.com/alexiusacademia/gobeam/internal/config"
	"github.com/alexiusacademia/gobeam/internal/diagram"
	"github.com/alexiusacademia/gobeam/internal/envelope"
	"github.com/alexiusacademia/gobeam/internal/nscp"
)

var (
	analyzeStations   int
	analyzeASCII      bool
	analyzePlotDir    string
	analyzeCombo      string
	analyzeEnvelope   bool
	analyzeSimplified bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Solve reactions and internal force diagrams of a member",
	Long: `Solve the support reactions of a member defined in a YAML file and
report shear, moment, slope and deflection along its length. Axial and
torsion results are added when the member carries them.

Loads may be tagged with an NSCP load case (D, L, Lr, W, E, R). Untagged
loads are dead load. Use --combo to analyze one factored combination or
--envelope to run every combination in parallel.

Examples:
  # Analyze the built-in two-span beam
  gobeam analyze --preset continuous

  # Analyze a file with terminal diagrams
  gobeam analyze -f beam.yaml --ascii

  # Governing NSCP combination with exported diagrams
  gobeam analyze -f beam.yaml --envelope --plot out/`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addModelFlags(analyzeCmd)

	analyzeCmd.Flags().IntVarP(&analyzeStations, "stations", "n", 0, "Number of report stations (default from file)")
	analyzeCmd.Flags().BoolVar(&analyzeASCII, "ascii", false, "Show ASCII diagrams")
	analyzeCmd.Flags().StringVar(&analyzePlotDir, "plot", "", "Export diagrams to this directory (png)")
	analyzeCmd.Flags().StringVarP(&analyzeCombo, "combo", "c", "", "Analyze a single NSCP combination by ID")
	analyzeCmd.Flags().BoolVarP(&analyzeEnvelope, "envelope", "e", false, "Run every NSCP combination and report the governing ones")
	analyzeCmd.Flags().BoolVarP(&analyzeSimplified, "simplified", "s", false, "Use simplified combinations (1.4D and 1.2D+1.6L)")
}

func combinations() []nscp.LoadCombination {
	if analyzeSimplified {
		return nscp.SimplifiedCombinations
	}
	return nscp.LoadCombinations
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, model, err := loadModel()
	if err != nil {
		return err
	}
	n := cfg.Stations
	if analyzeStations > 0 {
		n = analyzeStations
	}

	registry := model.Registry
	title := "MEMBER ANALYSIS"
	if analyzeCombo != "" {
		combo, ok := nscp.Find(combinations(), analyzeCombo)
		if !ok {
			return fmt.Errorf("unknown load combination %q", analyzeCombo)
		}
		for _, l := range registry.Loads() {
			if !nscp.KnownCase(l.Load.Case) {
				return fmt.Errorf("load %s has unknown case %q", l.Load, l.Load.Case)
			}
		}
		registry = registry.Scaled(combo.Factor)
		title = fmt.Sprintf("MEMBER ANALYSIS - COMBINATION %s: %s", combo.ID, combo.Description)
	}

	a := analysis.New(model.Member, registry, analysis.WithLogger(slog.Default()))
	if err := a.Solve(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printMember(cfg, model)
	if err := printReactions(a); err != nil {
		return err
	}

	qs := reportQuantities(a)
	if err := printStations(a, qs, n); err != nil {
		return err
	}
	if err := printExtremes(a, qs); err != nil {
		return err
	}

	if analyzeASCII || analyzePlotDir != "" {
		if err := drawDiagrams(a, qs, n); err != nil {
			return err
		}
	}

	if analyzeEnvelope {
		return runEnvelope(cmd, model)
	}
	return nil
}

func printMember(cfg *config.Config, model *config.Model) {
	m := model.Member
	fmt.Println("MEMBER:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if cfg.Name != "" {
		fmt.Fprintf(w, "  Name:\t%s\n", cfg.Name)
	}
	fmt.Fprintf(w, "  Units:\t%s\n", cfg.Units)
	fmt.Fprintf(w, "  Length (L):\t%.4g\n", m.Length())
	fmt.Fprintf(w, "  Elastic modulus (E):\t%.4g\n", m.E())
	fmt.Fprintf(w, "  Moment of inertia (I):\t%.4g\n", m.I())
	if m.Shape() != nil {
		fmt.Fprintf(w, "  Section:\t%s\n", m.Shape().Name())
	}
	if m.Area() > 0 {
		fmt.Fprintf(w, "  Area (A):\t%.4g\n", m.Area())
	}
	if m.HasTorsion() {
		fmt.Fprintf(w, "  Shear modulus (G):\t%.4g\n", m.G())
		fmt.Fprintf(w, "  Torsion constant (J):\t%.4g\n", m.J())
	}
	if spans := m.Spans(); len(spans) > 1 {
		fmt.Fprintf(w, "  Rigidity spans:\t%d\n", len(spans))
	}
	w.Flush()
	fmt.Println()

	fmt.Println("LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	for _, l := range model.Registry.Loads() {
		c := l.Load.Case
		if c == "" {
			c = nscp.Dead
		}
		fmt.Printf("  [%-2s] %s\n", c, l.Load)
	}
	fmt.Println()
}

func printReactions(a *analysis.Analysis) error {
	res, err := a.Result()
	if err != nil {
		return err
	}
	fmt.Println("SUPPORT REACTIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Support\tx\tRx\tRy\tMz\tTx\n")
	fmt.Fprintf(w, "  ───────\t─\t──\t──\t──\t──\n")
	for _, r := range res.Reactions {
		fmt.Fprintf(w, "  %s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			r.Kind, r.Position, clean(r.Fx), clean(r.Fy), clean(r.Mz), clean(r.Tx))
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("  Degree of indeterminacy: %d\n", res.Degree)
	if len(res.Redundants) > 0 {
		names := make([]string, len(res.Redundants))
		for i, u := range res.Redundants {
			names[i] = u.String()
		}
		fmt.Printf("  Redundants: %s\n", strings.Join(names, ", "))
	}
	fmt.Printf("  Equilibrium residual: %.3g\n", res.Residual)
	fmt.Println()
	return nil
}

// reportQuantities drops the axial and torsion fields when they carry
// nothing.
func reportQuantities(a *analysis.Analysis) []analysis.Quantity {
	qs := []analysis.Quantity{analysis.Shear, analysis.Moment, analysis.Slope, analysis.Deflection}
	var axial, torsion bool
	for _, l := range a.Registry().Loads() {
		fx, _, _, tx := l.Load.Resultant()
		axial = axial || fx != 0
		torsion = torsion || tx != 0
	}
	m := a.Member()
	if axial {
		qs = append(qs, analysis.Axial)
		if m.HasAxial() {
			qs = append(qs, analysis.AxialDisplacement)
		}
	}
	if torsion {
		qs = append(qs, analysis.Torque)
		if m.HasTorsion() {
			qs = append(qs, analysis.Twist)
		}
	}
	return qs
}

func printStations(a *analysis.Analysis, qs []analysis.Quantity, n int) error {
	fmt.Println("STATIONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	// shear breaks hold every load position
	xs, _, err := a.Stations(analysis.Shear, n)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  x\t")
	for _, q := range qs {
		fmt.Fprintf(w, "%s\t", q.Symbol())
	}
	fmt.Fprintln(w)
	for _, x := range xs {
		fmt.Fprintf(w, "  %.4g\t", x)
		for _, q := range qs {
			v, err := a.Value(q, x)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%.5g\t", clean(v))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
	return nil
}

func printExtremes(a *analysis.Analysis, qs []analysis.Quantity) error {
	l := a.Member().Length()
	fmt.Println("EXTREME VALUES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, q := range qs {
		x, v, err := a.Extremum(q, 0, l)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s max (%s):\t%.5g\tat x = %.4g\n", q, q.Symbol(), clean(v), x)
	}
	w.Flush()

	zeros, err := a.ZeroCrossings(analysis.Shear, 0, l)
	if err != nil {
		return err
	}
	if len(zeros) > 0 {
		parts := make([]string, len(zeros))
		for i, z := range zeros {
			parts[i] = fmt.Sprintf("%.4g", z)
		}
		fmt.Printf("  Zero shear at x = %s\n", strings.Join(parts, ", "))
	}
	fmt.Println()
	return nil
}

func drawDiagrams(a *analysis.Analysis, qs []analysis.Quantity, n int) error {
	units := a.Member().Convention().Units
	// diagrams read better with more points than the table
	samples := max(4*n, 81)
	for _, q := range qs {
		xs, ys, err := a.Stations(q, samples)
		if err != nil {
			return err
		}
		s := diagram.Series{Title: diagramTitle(q), Symbol: q.Symbol(), Unit: units, X: xs, Y: ys}
		if analyzeASCII {
			fmt.Println(diagram.Plot(s, 60, 10))
			fmt.Println()
		}
		if analyzePlotDir != "" {
			path := filepath.Join(analyzePlotDir, q.String()+".png")
			if err := diagram.ExportDiagram(s, path); err != nil {
				return fmt.Errorf("exporting %s: %w", q, err)
			}
			fmt.Printf("  Diagram exported to: %s\n", path)
		}
	}
	return nil
}

func diagramTitle(q analysis.Quantity) string {
	switch q {
	case analysis.Shear:
		return "Shear force"
	case analysis.Moment:
		return "Bending moment"
	case analysis.Axial:
		return "Axial force"
	case analysis.AxialDisplacement:
		return "Axial displacement"
	case analysis.Twist:
		return "Angle of twist"
	}
	return strings.ToUpper(q.String()[:1]) + q.String()[1:]
}

func runEnvelope(cmd *cobra.Command, model *config.Model) error {
	combos := combinations()
	res, err := envelope.New(model.Member, model.Registry, combos, analysis.WithLogger(slog.Default())).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination")
	for _, q := range envelope.Quantities {
		fmt.Fprintf(w, "\t|%s| max", q.Symbol())
	}
	fmt.Fprintln(w)
	for _, e := range res.Entries {
		fmt.Fprintf(w, "  %s\t%s", e.Combination.ID, e.Combination.Description)
		for _, q := range envelope.Quantities {
			fmt.Fprintf(w, "\t%.5g", math.Abs(e.Peaks[q].Value))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()

	var lines []string
	for _, q := range envelope.Quantities {
		e, p := res.Governing(q)
		lines = append(lines, fmt.Sprintf("%-10s %s = %.5g at x = %.4g (combination %s)",
			q, q.Symbol(), clean(p.Value), p.X, e.Combination.ID))
	}
	fmt.Print(diagram.DrawSummaryBox("GOVERNING COMBINATIONS", lines))
	fmt.Println()
	return nil
}

// clean hides round-off noise in printed values.
func clean(v float64) float64 {
	if math.Abs(v) < 1e-9 {
		return 0
	}
	return v
}
