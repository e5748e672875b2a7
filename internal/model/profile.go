// Package model defines the core data structures for powerprof.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Profile is a power profile as managed by power-profiles-daemon.
type Profile int

const (
	// ProfileInvalid means unknown, not yet determined, or an error occurred.
	// It is never sent over the wire.
	ProfileInvalid Profile = iota - 1
	ProfilePowerSaver
	ProfileBalanced
	ProfilePerformance
)

// Wire strings as exchanged with the daemon.
const (
	WirePowerSaver  = "power-saver"
	WireBalanced    = "balanced"
	WirePerformance = "performance"

	// wireInvalid is only used for logging and display.
	wireInvalid = "invalid"
)

// ErrUnknownProfile is returned when text does not name a profile.
var ErrUnknownProfile = errors.New("unknown power profile")

// profileOrder is the policy order used for matching and listing.
var profileOrder = []Profile{ProfilePowerSaver, ProfileBalanced, ProfilePerformance}

// Profiles returns the valid profiles in policy order.
func Profiles() []Profile {
	out := make([]Profile, len(profileOrder))
	copy(out, profileOrder)
	return out
}

// String returns the wire string of the profile, or "invalid".
func (p Profile) String() string {
	switch p {
	case ProfilePowerSaver:
		return WirePowerSaver
	case ProfileBalanced:
		return WireBalanced
	case ProfilePerformance:
		return WirePerformance
	default:
		return wireInvalid
	}
}

// Label returns the human-readable name shown in menus.
func (p Profile) Label() string {
	switch p {
	case ProfilePowerSaver:
		return "Power Saver"
	case ProfileBalanced:
		return "Balanced"
	case ProfilePerformance:
		return "Performance"
	default:
		return "Invalid"
	}
}

// Valid reports whether p is one of the three real profiles.
func (p Profile) Valid() bool {
	return p == ProfilePowerSaver || p == ProfileBalanced || p == ProfilePerformance
}

// ParseProfile maps a wire string to a Profile, ignoring case.
// Whitespace is significant. Unrecognised input yields ProfileInvalid.
func ParseProfile(s string) Profile {
	for _, p := range profileOrder {
		if strings.EqualFold(s, p.String()) {
			return p
		}
	}
	return ProfileInvalid
}

// MarshalText encodes the profile as its wire string.
func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a wire string. "invalid" round-trips to ProfileInvalid.
func (p *Profile) UnmarshalText(text []byte) error {
	s := string(text)
	parsed := ParseProfile(s)
	if parsed == ProfileInvalid && !strings.EqualFold(s, wireInvalid) {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
	*p = parsed
	return nil
}
