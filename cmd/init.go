package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/config"
)

var (
	initOutput string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a member definition to start from",
	Long: `Write one of the built-in members as a YAML file that can be edited
and passed to 'gobeam analyze -f'.

Examples:
  gobeam init
  gobeam init --preset shaft -o shaft.yaml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&modelPreset, "preset", "p", "simple", "Built-in member to write")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "beam.yaml", "Output file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(modelPreset)
	if cfg == nil {
		return fmt.Errorf("unknown preset %q", modelPreset)
	}
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", initOutput)
	}
	if err := config.Save(initOutput, cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote %s member to %s\n", modelPreset, initOutput)
	return nil
}
