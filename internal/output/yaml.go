package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/leadscout/leadscout/internal/leads"
)

// YAMLWriter writes the record set as a YAML sequence.
type YAMLWriter struct {
	w io.Writer
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: w}
}

// WriteAll writes all records as one YAML document.
func (w *YAMLWriter) WriteAll(records []leads.Record) error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

// Close is a no-op; WriteAll closes its encoder.
func (w *YAMLWriter) Close() error {
	return nil
}
