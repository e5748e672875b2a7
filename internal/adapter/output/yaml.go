package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats entries as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes a single entry as a mapping and several as a sequence.
func (f *YAMLFormatter) Format(w io.Writer, entries []Entry) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if len(entries) == 1 {
		return encoder.Encode(entries[0])
	}
	return encoder.Encode(entries)
}
