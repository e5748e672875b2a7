package dbus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/powerprof/internal/model"
)

const (
	opConnect = "connect to system bus"
	opFetch   = "fetch active profile"
	opSet     = "set active profile"
)

// Client reads and writes the active power profile of power-profiles-daemon.
// It owns a single bus connection from NewClient until Close.
//
// Every call blocks until the daemon replies or the bus times out. The client
// adds no locking of its own; callers should issue one call at a time.
type Client struct {
	conn     Conn
	obj      dbus.BusObject
	reporter Reporter
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	dialer Dialer
	logger *slog.Logger
}

// WithDialer replaces the system bus dialer.
func WithDialer(d Dialer) Option {
	return func(o *clientOptions) {
		o.dialer = d
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient connects to the system bus. If the bus cannot be reached it
// returns a nil client and an error of kind KindBusUnavailable.
// A nil reporter discards notices.
func NewClient(reporter Reporter, opts ...Option) (*Client, error) {
	o := clientOptions{dialer: SystemBusDialer}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if reporter == nil {
		reporter = NopReporter{}
	}

	conn, err := o.dialer()
	if err != nil {
		return nil, &Error{Kind: KindBusUnavailable, Op: opConnect, Err: err}
	}
	if conn == nil {
		return nil, &Error{Kind: KindBusUnavailable, Op: opConnect, Detail: "dialer returned no connection"}
	}

	o.logger.Debug("connected to system bus", "destination", DBusDestination)

	return &Client{
		conn:     conn,
		obj:      conn.Object(DBusDestination, dbus.ObjectPath(DBusPath)),
		reporter: reporter,
		logger:   o.logger,
	}, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// FetchActiveProfile asks the daemon for its ActiveProfile property.
//
// A successful fetch reports nothing and returns the parsed profile, which
// is ProfileInvalid if the daemon sent an unrecognised name. Any failure is
// reported as one error notice and returns ProfileInvalid with the error.
func (c *Client) FetchActiveProfile(ctx context.Context) (model.Profile, error) {
	call := c.obj.CallWithContext(ctx, methodGet, 0, DBusInterface, ActiveProfileProperty)
	if err := callError(opFetch, call); err != nil {
		return model.ProfileInvalid, c.fail(err)
	}

	value, err := decodeStringVariant(call.Body)
	if err != nil {
		return model.ProfileInvalid, c.fail(err)
	}

	profile := model.ParseProfile(value)
	if profile == model.ProfileInvalid {
		c.logger.Warn("daemon reported unknown profile", "value", value)
	} else {
		c.logger.Debug("fetched active profile", "profile", profile)
	}
	return profile, nil
}

// SetProfile asks the daemon to switch to profile.
//
// ProfileInvalid is rejected before any bus traffic. On success one success
// notice naming the requested profile is reported and true is returned;
// otherwise one error notice is reported and false is returned.
func (c *Client) SetProfile(ctx context.Context, profile model.Profile) (bool, error) {
	if !profile.Valid() {
		return false, c.fail(&Error{
			Kind:   KindInvalidArgument,
			Op:     opSet,
			Detail: "cannot set invalid profile",
		})
	}

	wire := profile.String()
	call := c.obj.CallWithContext(ctx, methodSet, 0,
		DBusInterface, ActiveProfileProperty, dbus.MakeVariant(wire))
	if err := callError(opSet, call); err != nil {
		return false, c.fail(err)
	}

	c.logger.Debug("set active profile", "profile", wire)
	c.reporter.OnSuccess(fmt.Sprintf("Asked power-profiles-daemon to change active profile to: %s", wire))
	return true, nil
}

// fail reports err as an error notice and returns it.
func (c *Client) fail(err *Error) error {
	c.logger.Debug("bus operation failed", "op", err.Op, "kind", err.Kind.String(), "error", err)
	c.reporter.OnError(err.Error())
	return err
}

// callError converts the outcome of a method call into an *Error, or nil.
func callError(op string, call *dbus.Call) *Error {
	if call == nil {
		return &Error{Kind: KindTransportFailure, Op: op, Detail: "no reply received"}
	}
	if call.Err != nil {
		return &Error{Kind: classifyCallError(call.Err), Op: op, Err: call.Err}
	}
	return nil
}

// decodeStringVariant validates a Properties.Get reply body of signature "v"
// holding a string.
func decodeStringVariant(body []interface{}) (string, *Error) {
	malformed := func(detail string) *Error {
		return &Error{Kind: KindMalformedReply, Op: opFetch, Detail: detail}
	}

	if len(body) == 0 {
		return "", malformed("reply has no arguments")
	}

	variant, ok := body[0].(dbus.Variant)
	if !ok {
		return "", malformed(fmt.Sprintf("first argument is %T, expected variant", body[0]))
	}

	value, ok := variant.Value().(string)
	if !ok {
		return "", malformed(fmt.Sprintf("variant holds %s, expected string", variant.Signature()))
	}

	return value, nil
}
