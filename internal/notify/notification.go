package notify

import (
	"github.com/godbus/dbus/v5"
)

// Urgency levels matching the freedesktop notification specification.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// String returns the string representation of the urgency.
func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Notification holds the parameters of an org.freedesktop.Notifications.Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// SetUrgency sets the urgency hint.
func (n *Notification) SetUrgency(u Urgency) {
	n.setHint("urgency", dbus.MakeVariant(byte(u)))
}

// SetCategory sets the category hint.
func (n *Notification) SetCategory(category string) {
	n.setHint("category", dbus.MakeVariant(category))
}

// SetTransient marks the notification as not to be kept in history.
func (n *Notification) SetTransient(transient bool) {
	n.setHint("transient", dbus.MakeVariant(transient))
}

// SetDesktopEntry sets the desktop-entry hint.
func (n *Notification) SetDesktopEntry(entry string) {
	n.setHint("desktop-entry", dbus.MakeVariant(entry))
}

// Urgency extracts the urgency hint. Returns UrgencyNormal if not specified.
func (n *Notification) Urgency() Urgency {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return Urgency(b)
		}
	}
	return UrgencyNormal
}

func (n *Notification) setHint(key string, value dbus.Variant) {
	if n.Hints == nil {
		n.Hints = make(map[string]dbus.Variant)
	}
	n.Hints[key] = value
}

// args returns the Notify method arguments in signature order (susssasa{sv}i).
func (n *Notification) args() []interface{} {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	return []interface{}{
		n.AppName,
		n.ReplacesID,
		n.AppIcon,
		n.Summary,
		n.Body,
		actions,
		hints,
		n.ExpireTimeout,
	}
}
