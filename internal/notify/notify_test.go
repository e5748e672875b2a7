package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*Notification
	err  error
}

func (f *fakeSender) Send(_ context.Context, n *Notification) (uint32, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.sent = append(f.sent, n)
	return uint32(len(f.sent)), nil
}

func TestReporter_Levels(t *testing.T) {
	sender := &fakeSender{}
	r := NewReporter(sender, Options{AppName: "Power Profiles", Icon: "battery", Timeout: 5 * time.Second}, nil)

	r.OnSuccess("Asked power-profiles-daemon to change active profile to: balanced")
	r.OnError("set active profile: transport failure: access denied")
	r.Notify("Active profile: balanced")

	require.Len(t, sender.sent, 3)

	assert.Equal(t, "Power Profiles", sender.sent[0].Summary)
	assert.Equal(t, UrgencyLow, sender.sent[0].Urgency())
	assert.Equal(t, "battery", sender.sent[0].AppIcon)
	assert.Equal(t, int32(5000), sender.sent[0].ExpireTimeout)

	assert.Equal(t, UrgencyCritical, sender.sent[1].Urgency())
	assert.Equal(t, "dialog-error", sender.sent[1].AppIcon)
	assert.Contains(t, sender.sent[1].Body, "access denied")

	assert.Equal(t, UrgencyNormal, sender.sent[2].Urgency())
	assert.Equal(t, dbus.MakeVariant(true), sender.sent[2].Hints["transient"])
	assert.Equal(t, dbus.MakeVariant("powerprof"), sender.sent[2].Hints["desktop-entry"])
}

func TestReporter_RateLimit(t *testing.T) {
	sender := &fakeSender{}
	r := NewReporter(sender, Options{MinInterval: time.Minute}, nil)

	now := time.Unix(1700000000, 0)
	r.now = func() time.Time { return now }

	r.OnError("same")
	r.OnError("same")
	r.OnError("different")
	assert.Len(t, sender.sent, 2)

	now = now.Add(2 * time.Minute)
	r.OnError("same")
	assert.Len(t, sender.sent, 3)
}

func TestReporter_NoRateLimit(t *testing.T) {
	sender := &fakeSender{}
	r := NewReporter(sender, Options{}, nil)

	r.OnSuccess("x")
	r.OnSuccess("x")
	assert.Len(t, sender.sent, 2)
	assert.Equal(t, int32(-1), sender.sent[0].ExpireTimeout)
}

func TestReporter_SendErrorIsSwallowed(t *testing.T) {
	r := NewReporter(&fakeSender{err: errors.New("no notification daemon")}, Options{}, nil)
	assert.NotPanics(t, func() { r.OnError("boom") })
}

func TestUrgencyString(t *testing.T) {
	assert.Equal(t, "low", UrgencyLow.String())
	assert.Equal(t, "normal", UrgencyNormal.String())
	assert.Equal(t, "critical", UrgencyCritical.String())
	assert.Equal(t, "unknown", Urgency(9).String())
}

type fakeObject struct {
	dbus.BusObject
	method string
	args   []interface{}
}

func (f *fakeObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.method = method
	f.args = args
	return &dbus.Call{Body: []interface{}{uint32(42)}}
}

type fakeConn struct {
	obj  *fakeObject
	dest string
}

func (c *fakeConn) Object(dest string, _ dbus.ObjectPath) dbus.BusObject {
	c.dest = dest
	return c.obj
}

func (c *fakeConn) Close() error { return nil }

func TestDesktopNotifier_Send(t *testing.T) {
	obj := &fakeObject{}
	conn := &fakeConn{obj: obj}
	d := NewDesktopNotifierWithConn(conn, nil)

	n := &Notification{AppName: "Power Profiles", Summary: "Power Profiles", Body: "Active profile: performance", ExpireTimeout: -1}
	n.SetUrgency(UrgencyNormal)

	id, err := d.Send(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), id)
	assert.Equal(t, "org.freedesktop.Notifications", conn.dest)
	assert.Equal(t, "org.freedesktop.Notifications.Notify", obj.method)

	require.Len(t, obj.args, 8)
	assert.Equal(t, "Power Profiles", obj.args[0])
	assert.Equal(t, uint32(0), obj.args[1])
	assert.Equal(t, "Active profile: performance", obj.args[4])
	assert.Equal(t, []string{}, obj.args[5])
	assert.Equal(t, int32(-1), obj.args[7])
}
