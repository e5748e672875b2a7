package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/powerprof/internal/adapter/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the active profile in Waybar's custom module JSON format.

This is designed to be used with Waybar's custom module:

  "custom/power-profile": {
    "exec": "powerprof status",
    "interval": 10,
    "return-type": "json",
    "on-click": "powerprof tui"
  }

The output includes:
  - text: Label of the active profile
  - alt: Wire name of the active profile, or "error"
  - tooltip: Active and available profiles
  - class: CSS class, same as alt

The command always exits 0 so the bar keeps polling.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	active, err := fetchProfile()
	if err != nil {
		logger.Debug("status fetch failed", "error", err)
	}

	return output.NewWaybarFormatter(output.DefaultFormatterOptions()).
		Format(cmd.OutOrStdout(), output.ListEntries(active))
}
