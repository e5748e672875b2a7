package dbus

import (
	"github.com/godbus/dbus/v5"
)

// Addresses of the remote ActiveProfile property.
const (
	// DBusDestination is the well-known name of power-profiles-daemon.
	DBusDestination = "org.freedesktop.UPower.PowerProfiles"
	// DBusPath is the object path exported by the daemon.
	DBusPath = "/org/freedesktop/UPower/PowerProfiles"
	// PropertiesInterface is the generic property-access interface.
	PropertiesInterface = "org.freedesktop.DBus.Properties"
	// DBusInterface owns the ActiveProfile property.
	DBusInterface = "org.freedesktop.UPower.PowerProfiles"
	// ActiveProfileProperty is the property read and written by the client.
	ActiveProfileProperty = "ActiveProfile"
)

// Method and signal names on PropertiesInterface.
const (
	methodGet               = PropertiesInterface + ".Get"
	methodSet               = PropertiesInterface + ".Set"
	signalPropertiesChanged = PropertiesInterface + ".PropertiesChanged"
)

// Reporter receives the human-readable outcome of client operations.
// Exactly one method is called per reported outcome.
type Reporter interface {
	OnSuccess(message string)
	OnError(message string)
}

// ReporterFuncs adapts two functions to a Reporter. Nil fields are skipped.
type ReporterFuncs struct {
	Success func(message string)
	Error   func(message string)
}

// OnSuccess calls r.Success if set.
func (r ReporterFuncs) OnSuccess(message string) {
	if r.Success != nil {
		r.Success(message)
	}
}

// OnError calls r.Error if set.
func (r ReporterFuncs) OnError(message string) {
	if r.Error != nil {
		r.Error(message)
	}
}

// NopReporter discards every notice.
type NopReporter struct{}

func (NopReporter) OnSuccess(string) {}
func (NopReporter) OnError(string)   {}

// MultiReporter fans each notice out to several reporters in order.
type MultiReporter []Reporter

// OnSuccess forwards to every reporter.
func (m MultiReporter) OnSuccess(message string) {
	for _, r := range m {
		r.OnSuccess(message)
	}
}

// OnError forwards to every reporter.
func (m MultiReporter) OnError(message string) {
	for _, r := range m {
		r.OnError(message)
	}
}

// Conn is the part of *dbus.Conn used by the client.
type Conn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Close() error
}

// Dialer opens a bus connection.
type Dialer func() (Conn, error)

// SystemBusDialer opens a private connection to the system bus.
func SystemBusDialer() (Conn, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}
	return conn, nil
}
