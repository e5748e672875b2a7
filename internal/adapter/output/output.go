// Package output provides output formatters for power profiles.
package output

import (
	"io"

	"github.com/jmylchreest/powerprof/internal/model"
)

// Entry is one profile as presented to the user.
type Entry struct {
	Profile model.Profile `json:"profile" yaml:"profile"`
	Label   string        `json:"label" yaml:"label"`
	Active  bool          `json:"active" yaml:"active"`
}

// Formatter formats profile entries for output.
type Formatter interface {
	// Format writes formatted entries to the writer.
	Format(w io.Writer, entries []Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain  FormatType = "plain"
	FormatJSON   FormatType = "json"
	FormatYAML   FormatType = "yaml"
	FormatWaybar FormatType = "waybar"
	FormatDmenu  FormatType = "dmenu"
)

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom template for plain format
	MarkActive bool   // Prefix plain lines with "*" for the active profile
	Separator  string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Separator: " | ",
	}
}

// NewFormatter creates a formatter for the specified format type.
// Unknown types fall back to plain text.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatWaybar:
		return NewWaybarFormatter(opts)
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// ActiveEntry returns the entry for a single fetched profile.
func ActiveEntry(p model.Profile) Entry {
	return Entry{Profile: p, Label: p.Label(), Active: p.Valid()}
}

// ListEntries returns one entry per valid profile, marking active.
func ListEntries(active model.Profile) []Entry {
	profiles := model.Profiles()
	entries := make([]Entry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, Entry{Profile: p, Label: p.Label(), Active: p == active})
	}
	return entries
}
