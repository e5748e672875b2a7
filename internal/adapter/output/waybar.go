package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

// WaybarFormatter writes the active entry as one Waybar status line.
type WaybarFormatter struct {
	opts FormatterOptions
}

// NewWaybarFormatter creates a new Waybar formatter.
func NewWaybarFormatter(opts FormatterOptions) *WaybarFormatter {
	return &WaybarFormatter{opts: opts}
}

// Format writes one JSON line describing the active profile.
func (f *WaybarFormatter) Format(w io.Writer, entries []Entry) error {
	return json.NewEncoder(w).Encode(WaybarStatusFor(entries))
}

// WaybarStatusFor builds the status for the active entry, or an error
// status when none is active.
func WaybarStatusFor(entries []Entry) WaybarStatus {
	for _, e := range entries {
		if !e.Active {
			continue
		}
		return WaybarStatus{
			Text:    e.Label,
			Alt:     e.Profile.String(),
			Tooltip: tooltip(entries, e),
			Class:   e.Profile.String(),
		}
	}
	return WaybarStatus{
		Text:    "",
		Alt:     "error",
		Tooltip: "Failed to fetch active profile. Is power-profiles-daemon running?",
		Class:   "error",
	}
}

func tooltip(entries []Entry, active Entry) string {
	lines := []string{fmt.Sprintf("Power profile: %s", active.Label)}
	if len(entries) > 1 {
		for _, e := range entries {
			if e.Active {
				continue
			}
			lines = append(lines, fmt.Sprintf("Available: %s", e.Label))
		}
	}
	return strings.Join(lines, "\n")
}
