package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// desktopEntry names the application to the notification server.
const desktopEntry = "powerprof"

// Options configures a Reporter.
type Options struct {
	AppName     string        // Notification title
	Icon        string        // Icon for success notices
	Timeout     time.Duration // Expiry; 0 = server default
	MinInterval time.Duration // Identical notices within this window are dropped
}

// Reporter turns client notices into desktop notifications.
// It satisfies the dbus.Reporter interface and rate-limits repeats so a
// misbehaving caller cannot flood the notification daemon.
type Reporter struct {
	mu     sync.Mutex
	sender Sender
	opts   Options
	logger *slog.Logger

	lastNotifyTime map[string]time.Time // message -> last notification time
	now            func() time.Time
}

// NewReporter creates a reporter that delivers through sender.
func NewReporter(sender Sender, opts Options, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		sender:         sender,
		opts:           opts,
		logger:         logger,
		lastNotifyTime: make(map[string]time.Time),
		now:            time.Now,
	}
}

// SetOptions replaces the options, e.g. after a config reload.
func (r *Reporter) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = opts
}

// OnSuccess shows a low-urgency notification.
func (r *Reporter) OnSuccess(message string) {
	r.notify(message, UrgencyLow)
}

// OnError shows a critical notification.
func (r *Reporter) OnError(message string) {
	r.notify(message, UrgencyCritical)
}

// Notify shows an informational notification, such as the active profile.
func (r *Reporter) Notify(message string) {
	r.notify(message, UrgencyNormal)
}

func (r *Reporter) notify(body string, urgency Urgency) {
	r.mu.Lock()
	opts := r.opts
	if lastTime, ok := r.lastNotifyTime[body]; ok && opts.MinInterval > 0 {
		if r.now().Sub(lastTime) < opts.MinInterval {
			r.mu.Unlock()
			r.logger.Debug("desktop notification rate-limited", "body", body)
			return
		}
	}
	r.lastNotifyTime[body] = r.now()
	r.mu.Unlock()

	n := &Notification{
		AppName:       opts.AppName,
		Summary:       opts.AppName,
		Body:          body,
		ExpireTimeout: expireTimeout(opts.Timeout),
	}
	n.SetUrgency(urgency)
	n.SetCategory("device")
	n.SetTransient(true)
	n.SetDesktopEntry(desktopEntry)

	switch urgency {
	case UrgencyCritical:
		n.AppIcon = "dialog-error"
	default:
		n.AppIcon = opts.Icon
	}

	if _, err := r.sender.Send(context.Background(), n); err != nil {
		r.logger.Warn("failed to show desktop notification", "error", err)
	}
}

func expireTimeout(d time.Duration) int32 {
	if d <= 0 {
		return -1
	}
	return int32(d.Milliseconds())
}
