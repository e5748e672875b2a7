package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	// DBusDestination is the notification service name.
	DBusDestination = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
)

// Sender delivers a notification and returns its server-assigned ID.
type Sender interface {
	Send(ctx context.Context, n *Notification) (uint32, error)
}

// Conn is the part of *dbus.Conn used by DesktopNotifier.
type Conn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Close() error
}

// DesktopNotifier sends notifications over the session bus.
type DesktopNotifier struct {
	conn   Conn
	obj    dbus.BusObject
	logger *slog.Logger
}

// NewDesktopNotifier connects to the session bus.
func NewDesktopNotifier(logger *slog.Logger) (*DesktopNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return NewDesktopNotifierWithConn(conn, logger), nil
}

// NewDesktopNotifierWithConn uses an existing connection.
func NewDesktopNotifierWithConn(conn Conn, logger *slog.Logger) *DesktopNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DesktopNotifier{
		conn:   conn,
		obj:    conn.Object(DBusDestination, dbus.ObjectPath(DBusPath)),
		logger: logger,
	}
}

// Send calls org.freedesktop.Notifications.Notify.
func (d *DesktopNotifier) Send(ctx context.Context, n *Notification) (uint32, error) {
	var id uint32
	err := d.obj.CallWithContext(ctx, DBusInterface+".Notify", 0, n.args()...).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", err)
	}
	d.logger.Debug("sent desktop notification", "id", id, "summary", n.Summary)
	return id, nil
}

// Close releases the session bus connection.
func (d *DesktopNotifier) Close() error {
	return d.conn.Close()
}
