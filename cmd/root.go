package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Strength of materials analysis for straight members",
	Long: `gobeam - Go Beam, Shaft and Bar Analyzer

A CLI tool for the analysis of straight prismatic or stepped members
under bending, axial load and torsion.

This tool helps structural engineers perform:
  - Support reactions for determinate and indeterminate members
  - Shear, moment, axial force and torque diagrams
  - Slope, deflection, elongation and angle of twist
  - Normal and shear stress at any fibre, with Mohr's circle
  - Load combination envelopes following NSCP 2015`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: "15:04:05",
			}),
		))
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobeam v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Beam, Shaft and Bar Analyzer                         ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Force method solution of statically indeterminate members")
		fmt.Println("    • Exact piecewise polynomial diagrams (no numerical integration)")
		fmt.Println("    • Stepped members and Timoshenko shear deflection")
		fmt.Println("    • Combined stress, principal stresses and failure checks")
		fmt.Println()
		fmt.Println("  Use 'gobeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solver details to stderr")
}
