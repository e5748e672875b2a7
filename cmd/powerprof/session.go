package main

import (
	"context"
	"fmt"
	"io"
	"time"

	godbus "github.com/godbus/dbus/v5"

	"github.com/jmylchreest/powerprof/internal/config"
	"github.com/jmylchreest/powerprof/internal/dbus"
	"github.com/jmylchreest/powerprof/internal/model"
	"github.com/jmylchreest/powerprof/internal/notify"
)

// callTimeout bounds a single request to the daemon.
const callTimeout = 10 * time.Second

// session bundles the bus client with the places its notices go.
type session struct {
	client   *dbus.Client
	notices  *model.NoticeLog
	desktop  *notify.Reporter
	notifier *notify.DesktopNotifier
}

// openSession connects to power-profiles-daemon. Notices are always kept in
// the session log; extra reporters (such as console output) also receive
// them. When withDesktop is set, notices are shown as desktop notifications.
func openSession(withDesktop bool, extra ...dbus.Reporter) (*session, error) {
	s := &session{notices: model.NewNoticeLog()}

	reporters := dbus.MultiReporter{s.notices}
	reporters = append(reporters, extra...)

	if withDesktop {
		if err := s.openDesktop(); err != nil {
			logger.Warn("desktop notifications unavailable", "error", err)
		} else {
			reporters = append(reporters, s.desktop)
		}
	}

	client, err := dbus.NewClient(reporters, dbus.WithLogger(logger))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.client = client
	return s, nil
}

// openDesktop connects the desktop notifier without attaching it to a client.
func (s *session) openDesktop() error {
	if s.desktop != nil {
		return nil
	}
	notifier, err := notify.NewDesktopNotifier(logger)
	if err != nil {
		return err
	}
	s.notifier = notifier
	s.desktop = notify.NewReporter(notifier, notifyOptions(getConfig()), logger)
	return nil
}

// Close releases every connection the session holds.
func (s *session) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			logger.Debug("failed to close system bus connection", "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.Close(); err != nil {
			logger.Debug("failed to close session bus connection", "error", err)
		}
	}
}

// notifyOptions maps the [notify] config section onto reporter options.
func notifyOptions(c *config.Config) notify.Options {
	return notify.Options{
		AppName:     c.Notify.AppName,
		Icon:        c.Notify.Icon,
		Timeout:     c.Notify.Timeout.Duration(),
		MinInterval: c.Notify.MinInterval.Duration(),
	}
}

// consoleReporter prints notices: successes to out, errors to errOut.
func consoleReporter(out, errOut io.Writer) dbus.Reporter {
	return dbus.ReporterFuncs{
		Success: func(message string) { fmt.Fprintln(out, message) },
		Error:   func(message string) { fmt.Fprintln(errOut, message) },
	}
}

// startWatcher subscribes to profile changes on a dedicated system bus
// connection. The returned closer ends the subscription's connection.
func startWatcher(ctx context.Context) (<-chan model.Profile, io.Closer, error) {
	conn, err := godbus.ConnectSystemBus()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	changes, err := dbus.NewWatcher(conn, logger).Start(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return changes, conn, nil
}

// notifyRequested reports whether desktop notifications are wanted: the
// --notify flag when given, the config otherwise.
func notifyRequested(flagSet bool, flagValue bool) bool {
	if flagSet {
		return flagValue
	}
	return getConfig().Notify.Enabled
}
