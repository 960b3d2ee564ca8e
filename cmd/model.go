package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobeam/internal/config"
)

var (
	modelFile   string
	modelPreset string
)

// addModelFlags registers the flags that select a member definition.
func addModelFlags(c *cobra.Command) {
	c.Flags().StringVarP(&modelFile, "file", "f", "", "Path to member YAML file")
	c.Flags().StringVarP(&modelPreset, "preset", "p", "simple",
		fmt.Sprintf("Built-in member when no file is given (%s)", strings.Join(config.ListPresets(), ", ")))
}

func loadModel() (*config.Config, *config.Model, error) {
	var cfg *config.Config
	if modelFile != "" {
		c, err := config.Load(modelFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading %s: %w", modelFile, err)
		}
		cfg = c
	} else {
		cfg = config.GetPreset(modelPreset)
		if cfg == nil {
			return nil, nil, fmt.Errorf("unknown preset %q", modelPreset)
		}
	}
	model, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("model loaded",
		"name", cfg.Name,
		"length", model.Member.Length(),
		"supports", len(model.Supports),
		"loads", len(model.Loads))
	return cfg, model, nil
}
