package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/nscp"
)

var combosSimplified bool

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "List the NSCP load combinations",
	Long: `List the NSCP 2015 load combinations used by 'gobeam analyze --combo'
and 'gobeam analyze --envelope', with the factor applied to each load case.

Load Types:
  D  - Dead load (also any load without a case)
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load`,
	Run: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)
	combosCmd.Flags().BoolVarP(&combosSimplified, "simplified", "s", false, "Show simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runCombos(cmd *cobra.Command, args []string) {
	combinations := nscp.LoadCombinations
	if combosSimplified {
		combinations = nscp.SimplifiedCombinations
	}
	cases := []string{nscp.Dead, nscp.Live, nscp.Roof, nscp.Wind, nscp.Earthquake, nscp.Rain}

	fmt.Println()
	fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination")
	for _, c := range cases {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)
	for _, combo := range combinations {
		fmt.Fprintf(w, "  %s\t%s", combo.ID, combo.Description)
		for _, c := range cases {
			if f := combo.Factor(c); f != 0 {
				fmt.Fprintf(w, "\t%.1f", f)
			} else {
				fmt.Fprintf(w, "\t-")
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
}
