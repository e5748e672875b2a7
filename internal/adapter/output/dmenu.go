package output

import (
	"fmt"
	"io"
	"strings"
)

// DmenuFormatter formats entries for dmenu/rofi/fuzzel, one per line.
// The wire string comes first so the chosen line can be fed back to
// "powerprof set --stdin".
type DmenuFormatter struct {
	opts FormatterOptions
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	if opts.Separator == "" {
		opts.Separator = DefaultFormatterOptions().Separator
	}
	return &DmenuFormatter{opts: opts}
}

// Format writes entries in dmenu format.
func (f *DmenuFormatter) Format(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, f.formatLine(e)); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(e Entry) string {
	parts := []string{e.Profile.String(), e.Label}
	if e.Active {
		parts = append(parts, "active")
	}
	return strings.Join(parts, f.opts.Separator)
}

// ParseDmenuLine returns the wire string at the start of a dmenu line.
func ParseDmenuLine(line, separator string) string {
	if separator == "" {
		separator = DefaultFormatterOptions().Separator
	}
	line = strings.TrimSpace(line)
	if i := strings.Index(line, strings.TrimSpace(separator)); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	return line
}
