package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/powerprof/internal/adapter/output"
	"github.com/jmylchreest/powerprof/internal/config"
	"github.com/jmylchreest/powerprof/internal/model"
)

const fetchFailedText = "Failed to fetch active profile. Is power-profiles-daemon running?"

// errFetchFailed is returned when no valid profile could be read.
var errFetchFailed = errors.New(fetchFailedText)

var getOpts struct {
	format   string
	template string
	notify   bool
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the active power profile",
	Long: `Print the power profile currently selected in power-profiles-daemon.

Exits with status 1 when the profile cannot be read.

Examples:
  # Print the wire name
  powerprof get

  # Print a custom line
  powerprof get --template 'Active profile: {{.Profile}}'

  # Output as JSON
  powerprof get --format json

  # Also show a desktop notification
  powerprof get --notify`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVarP(&getOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, waybar, dmenu; default from config)")
	getCmd.Flags().StringVar(&getOpts.template, "template", "",
		"Custom Go template for plain output")
	getCmd.Flags().BoolVar(&getOpts.notify, "notify", false,
		"Show the result as a desktop notification")
}

func runGet(cmd *cobra.Command, args []string) error {
	withDesktop := notifyRequested(cmd.Flags().Changed("notify"), getOpts.notify)

	profile, err := fetchProfile()
	if err != nil {
		logger.Debug("fetch failed", "error", err)
	}

	if withDesktop {
		notifyActiveProfile(profile)
	}

	if !profile.Valid() {
		return errFetchFailed
	}

	formatter, err := newFormatter(getOpts.format, getOpts.template, false)
	if err != nil {
		return err
	}
	return formatter.Format(cmd.OutOrStdout(), []output.Entry{output.ActiveEntry(profile)})
}

// fetchProfile opens a short-lived session and reads the active profile.
// Desktop notices are not attached; callers decide what to show.
func fetchProfile() (model.Profile, error) {
	s, err := openSession(false)
	if err != nil {
		return model.ProfileInvalid, err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	return s.client.FetchActiveProfile(ctx)
}

// notifyActiveProfile shows the fetched profile, or the failure, on the desktop.
func notifyActiveProfile(profile model.Profile) {
	s := &session{}
	defer s.Close()
	if err := s.openDesktop(); err != nil {
		logger.Warn("desktop notifications unavailable", "error", err)
		return
	}

	if profile.Valid() {
		s.desktop.Notify(fmt.Sprintf("Active profile: %s", profile))
		return
	}
	s.desktop.OnError(fetchFailedText)
}

// newFormatter resolves the output format and template against the config.
func newFormatter(format, template string, markActive bool) (output.Formatter, error) {
	c := getConfig()
	if format == "" {
		format = c.Output.Format
	}
	if !config.IsValidFormat(format) {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidFormat, format)
	}
	if template == "" {
		template = c.Output.Template
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = template
	opts.MarkActive = markActive
	return output.NewFormatter(output.FormatType(format), opts), nil
}
