package output

import (
	"fmt"
	"io"
	"text/template"
)

// PlainFormatter formats entries as plain text, one per line.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
// An unparsable template falls back to the wire string.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes entries as plain text.
func (f *PlainFormatter) Format(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if f.opts.MarkActive {
			marker := "  "
			if e.Active {
				marker = "* "
			}
			if _, err := io.WriteString(w, marker); err != nil {
				return err
			}
		}

		if f.template != nil {
			if err := f.template.Execute(w, e); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintln(w, e.Profile.String()); err != nil {
			return err
		}
	}
	return nil
}
