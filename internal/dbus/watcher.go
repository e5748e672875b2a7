package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/powerprof/internal/model"
)

// SignalConn is the part of *dbus.Conn used by the Watcher.
type SignalConn interface {
	AddMatchSignal(options ...dbus.MatchOption) error
	RemoveMatchSignal(options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
}

// Watcher follows PropertiesChanged signals from power-profiles-daemon and
// publishes ActiveProfile changes made by any program.
// It is independent of Client, which never subscribes to signals.
type Watcher struct {
	mu     sync.Mutex
	conn   SignalConn
	logger *slog.Logger

	signals chan *dbus.Signal
	running bool
}

// NewWatcher creates a watcher on conn. The connection should not be the
// one owned by a Client.
func NewWatcher(conn SignalConn, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		conn:   conn,
		logger: logger,
	}
}

func matchOptions() []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath(dbus.ObjectPath(DBusPath)),
		dbus.WithMatchInterface(PropertiesInterface),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchArg(0, DBusInterface),
	}
}

// Start subscribes to property changes. The returned channel receives each
// new profile and is closed when ctx is done.
func (w *Watcher) Start(ctx context.Context) (<-chan model.Profile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil, fmt.Errorf("watcher already running")
	}

	if err := w.conn.AddMatchSignal(matchOptions()...); err != nil {
		return nil, fmt.Errorf("failed to add match rule: %w", err)
	}

	w.signals = make(chan *dbus.Signal, 16)
	w.conn.Signal(w.signals)
	w.running = true

	out := make(chan model.Profile, 1)
	go w.loop(ctx, w.signals, out)

	w.logger.Debug("watching active profile", "path", DBusPath)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, in <-chan *dbus.Signal, out chan<- model.Profile) {
	defer close(out)
	defer w.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-in:
			if !ok {
				return
			}
			profile, ok := ProfileFromSignal(sig)
			if !ok {
				continue
			}
			w.logger.Debug("active profile changed", "profile", profile)
			select {
			case out <- profile:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	w.conn.RemoveSignal(w.signals)
	if err := w.conn.RemoveMatchSignal(matchOptions()...); err != nil {
		w.logger.Warn("failed to remove match rule", "error", err)
	}
	w.logger.Debug("stopped watching active profile")
}

// ProfileFromSignal extracts the new ActiveProfile from a PropertiesChanged
// signal. It returns false for any other signal, or if ActiveProfile was
// not among the changed properties.
func ProfileFromSignal(sig *dbus.Signal) (model.Profile, bool) {
	if sig == nil || sig.Name != signalPropertiesChanged || sig.Path != dbus.ObjectPath(DBusPath) {
		return model.ProfileInvalid, false
	}
	if len(sig.Body) < 2 {
		return model.ProfileInvalid, false
	}
	if iface, ok := sig.Body[0].(string); !ok || iface != DBusInterface {
		return model.ProfileInvalid, false
	}

	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return model.ProfileInvalid, false
	}
	v, ok := changed[ActiveProfileProperty]
	if !ok {
		return model.ProfileInvalid, false
	}
	s, ok := v.Value().(string)
	if !ok {
		return model.ProfileInvalid, false
	}
	return model.ParseProfile(s), true
}
