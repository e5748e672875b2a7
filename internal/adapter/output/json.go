package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats entries as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes a single entry as an object and several as an array.
func (f *JSONFormatter) Format(w io.Writer, entries []Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(entries) == 1 {
		return encoder.Encode(entries[0])
	}
	return encoder.Encode(entries)
}
