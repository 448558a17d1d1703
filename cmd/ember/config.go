package main

import (
	"github.com/spf13/cobra"

	"ember/internal/config"
	"ember/internal/ui"
)

// loadConfig resolves the effective config.Config for a command
// invocation: ember.toml (explicit --config or ./ember.toml if present),
// with Diag.MaxDiagnostics overridden by --max-diagnostics when passed.
// --color is read separately by colorMode; no other flag changes cfg.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = "ember.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("max-diagnostics") {
		max, err := cmd.Flags().GetInt("max-diagnostics")
		if err != nil {
			return cfg, err
		}
		cfg.Diag.MaxDiagnostics = max
	}
	return cfg, nil
}

func colorMode(cmd *cobra.Command) (ui.Mode, error) {
	v, err := cmd.Flags().GetString("color")
	if err != nil {
		return ui.Auto, err
	}
	return ui.ParseMode(v)
}
