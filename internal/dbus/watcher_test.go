package dbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/powerprof/internal/model"
)

type fakeSignalConn struct {
	mu       sync.Mutex
	ch       chan<- *dbus.Signal
	matches  int
	removed  bool
	matchErr error
}

func (c *fakeSignalConn) AddMatchSignal(...dbus.MatchOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matchErr != nil {
		return c.matchErr
	}
	c.matches++
	return nil
}

func (c *fakeSignalConn) RemoveMatchSignal(...dbus.MatchOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matches--
	return nil
}

func (c *fakeSignalConn) Signal(ch chan<- *dbus.Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ch = ch
}

func (c *fakeSignalConn) RemoveSignal(chan<- *dbus.Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed = true
}

func (c *fakeSignalConn) send(sig *dbus.Signal) {
	c.mu.Lock()
	ch := c.ch
	c.mu.Unlock()
	ch <- sig
}

func changedSignal(changed map[string]dbus.Variant) *dbus.Signal {
	return &dbus.Signal{
		Path: dbus.ObjectPath(DBusPath),
		Name: "org.freedesktop.DBus.Properties.PropertiesChanged",
		Body: []interface{}{DBusInterface, changed, []string{}},
	}
}

func TestProfileFromSignal(t *testing.T) {
	tests := []struct {
		name     string
		sig      *dbus.Signal
		expected model.Profile
		ok       bool
	}{
		{
			name:     "active profile changed",
			sig:      changedSignal(map[string]dbus.Variant{"ActiveProfile": dbus.MakeVariant("performance")}),
			expected: model.ProfilePerformance,
			ok:       true,
		},
		{
			name:     "unknown profile name",
			sig:      changedSignal(map[string]dbus.Variant{"ActiveProfile": dbus.MakeVariant("turbo")}),
			expected: model.ProfileInvalid,
			ok:       true,
		},
		{
			name:     "other property",
			sig:      changedSignal(map[string]dbus.Variant{"PerformanceDegraded": dbus.MakeVariant("")}),
			expected: model.ProfileInvalid,
		},
		{
			name:     "nil",
			sig:      nil,
			expected: model.ProfileInvalid,
		},
		{
			name: "other interface",
			sig: &dbus.Signal{
				Path: dbus.ObjectPath(DBusPath),
				Name: "org.freedesktop.DBus.Properties.PropertiesChanged",
				Body: []interface{}{"org.example.Other", map[string]dbus.Variant{"ActiveProfile": dbus.MakeVariant("balanced")}},
			},
			expected: model.ProfileInvalid,
		},
		{
			name:     "other signal",
			sig:      &dbus.Signal{Path: dbus.ObjectPath(DBusPath), Name: "org.freedesktop.DBus.NameOwnerChanged"},
			expected: model.ProfileInvalid,
		},
		{
			name:     "wrong value type",
			sig:      changedSignal(map[string]dbus.Variant{"ActiveProfile": dbus.MakeVariant(uint32(1))}),
			expected: model.ProfileInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, ok := ProfileFromSignal(tt.sig)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, profile)
		})
	}
}

func TestWatcher(t *testing.T) {
	conn := &fakeSignalConn{}
	w := NewWatcher(conn, nil)

	ctx, cancel := context.WithCancel(context.Background())
	profiles, err := w.Start(ctx)
	require.NoError(t, err)

	_, err = w.Start(ctx)
	assert.Error(t, err, "second start must fail")

	conn.send(changedSignal(map[string]dbus.Variant{"PerformanceDegraded": dbus.MakeVariant("")}))
	conn.send(changedSignal(map[string]dbus.Variant{"ActiveProfile": dbus.MakeVariant("power-saver")}))

	select {
	case p := <-profiles:
		assert.Equal(t, model.ProfilePowerSaver, p)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for profile change")
	}

	cancel()

	select {
	case _, ok := <-profiles:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.True(t, conn.removed)
	assert.Equal(t, 0, conn.matches)
}

func TestWatcher_MatchError(t *testing.T) {
	conn := &fakeSignalConn{matchErr: errors.New("access denied")}
	w := NewWatcher(conn, nil)

	_, err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
