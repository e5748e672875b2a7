package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/powerprof/internal/model"
	"github.com/jmylchreest/powerprof/internal/tui"
)

var tuiOpts struct {
	notify  bool
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive profile picker",
	Long: `Launch the interactive terminal picker.

The active profile is preselected. Moving to another profile and pressing
enter applies it immediately; the outcome is shown in the status line.
Changes made by other programs are followed unless --no-watch is given.

Key bindings:
  j/k, ↑/↓      Move selection
  enter/space   Apply selected profile
  r             Refresh from the daemon
  ?             Show help
  q, esc        Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.notify, "notify", false,
		"Also show outcomes as desktop notifications")
	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not follow profile changes made by other programs")
}

func runTUI(cmd *cobra.Command, args []string) error {
	withDesktop := notifyRequested(cmd.Flags().Changed("notify"), tuiOpts.notify)
	s, err := openSession(withDesktop)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan model.Profile
	if !tuiOpts.noWatch {
		ch, closer, err := startWatcher(ctx)
		if err != nil {
			logger.Warn("not following external profile changes", "error", err)
		} else {
			defer closer.Close()
			changes = ch
		}
	}

	return tui.Run(tui.RunOptions{
		Config:  getConfig(),
		Client:  s.client,
		Notices: s.notices,
		Changes: changes,
	})
}
