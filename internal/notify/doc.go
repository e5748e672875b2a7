// Package notify shows desktop notifications through the
// org.freedesktop.Notifications service on the session bus.
package notify
