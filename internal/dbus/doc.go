// Package dbus talks to power-profiles-daemon over the D-Bus system bus.
// It reads and writes the ActiveProfile property through the standard
// org.freedesktop.DBus.Properties interface and reports every outcome
// through a Reporter.
package dbus
