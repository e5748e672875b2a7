package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/powerprof/internal/adapter/output"
	"github.com/jmylchreest/powerprof/internal/config"
	"github.com/jmylchreest/powerprof/internal/model"
)

var watchOpts struct {
	format   string
	template string
	notify   bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the active profile whenever it changes",
	Long: `Print the active profile, then print it again each time any program
changes it.

With --format waybar the output can feed a Waybar custom module without
an "interval":

  "custom/power-profile": {
    "exec": "powerprof watch --format waybar",
    "return-type": "json"
  }

The config file is reloaded when it changes; the [notify] and [watch]
sections take effect immediately.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.format, "format", "f", "",
		"Output format (plain, json, yaml, waybar, dmenu; default from config)")
	watchCmd.Flags().StringVar(&watchOpts.template, "template", "",
		"Custom Go template for plain output")
	watchCmd.Flags().BoolVar(&watchOpts.notify, "notify", false,
		"Show a desktop notification on every change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter, err := newFormatter(watchOpts.format, watchOpts.template, false)
	if err != nil {
		return err
	}

	flagSet := cmd.Flags().Changed("notify")
	var notifyOnChange atomic.Bool
	notifyOnChange.Store(watchNotifyEnabled(getConfig(), flagSet))

	desktop := &session{}
	defer desktop.Close()
	if err := desktop.openDesktop(); err != nil {
		logger.Debug("desktop notifications unavailable", "error", err)
		desktop = nil
	}

	cfgWatcher, err := config.NewWatcher(configPath(), logger, func(c *config.Config) {
		notifyOnChange.Store(watchNotifyEnabled(c, flagSet))
		if desktop != nil {
			desktop.desktop.SetOptions(notifyOptions(c))
		}
	})
	if err != nil {
		logger.Warn("config reload disabled", "error", err)
	} else if err := cfgWatcher.Start(); err != nil {
		logger.Warn("config reload disabled", "error", err)
	} else {
		defer func() { _ = cfgWatcher.Stop() }()
	}

	changes, closer, err := startWatcher(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	notices := model.NewNoticeLog()
	emit := func(p model.Profile) error {
		if err := formatter.Format(cmd.OutOrStdout(), []output.Entry{output.ActiveEntry(p)}); err != nil {
			return err
		}
		if p.Valid() {
			notices.OnSuccess(fmt.Sprintf("Active profile changed to: %s", p))
		}
		return nil
	}

	initial, err := fetchProfile()
	if err != nil {
		logger.Warn("could not read active profile", "error", err)
	}
	if err := emit(initial); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-changes:
			if !ok {
				return nil
			}
			if last, ok := notices.Last(); ok {
				logger.Debug("profile changed", "profile", p, "previous_change", last.RelativeTime())
			}
			if err := emit(p); err != nil {
				return err
			}
			if notifyOnChange.Load() && desktop != nil {
				desktop.desktop.Notify(fmt.Sprintf("Active profile: %s", p))
			}
		}
	}
}

// watchNotifyEnabled applies the --notify flag over the config.
func watchNotifyEnabled(c *config.Config, flagSet bool) bool {
	if flagSet {
		return watchOpts.notify
	}
	return c.Notify.Enabled && c.Watch.NotifyOnChange
}
