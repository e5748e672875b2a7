package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/powerprof/internal/adapter/output"
)

var listOpts struct {
	format   string
	template string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available power profiles",
	Long: `List every power profile, marking the active one.

If the daemon cannot be reached the profiles are still listed, with none
marked active.

Examples:
  # Plain list, active profile marked with "*"
  powerprof list

  # Lines for dmenu-style launchers
  powerprof list --format dmenu`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, waybar, dmenu; default from config)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain output")
}

func runList(cmd *cobra.Command, args []string) error {
	active, err := fetchProfile()
	if err != nil {
		logger.Warn("could not read active profile", "error", err)
	}

	formatter, err := newFormatter(listOpts.format, listOpts.template, true)
	if err != nil {
		return err
	}
	return formatter.Format(cmd.OutOrStdout(), output.ListEntries(active))
}
