// Package output serializes the final lead set to the supported export
// formats. The column order is fixed and shared with the spreadsheet
// sink; it is the interchange contract with every consumer.
package output

import (
	"fmt"
	"io"

	"github.com/leadscout/leadscout/internal/leads"
)

// Format represents output format types.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer serializes lead records.
type Writer interface {
	// WriteAll writes the full record set.
	WriteAll(records []leads.Record) error

	// Close flushes and releases resources.
	Close() error
}

// Option configures a writer.
type Option func(*writerConfig)

type writerConfig struct {
	messages bool
}

// WithMessageColumns appends the generated call-script and email
// columns to tabular formats.
func WithMessageColumns(enabled bool) Option {
	return func(c *writerConfig) {
		c.messages = enabled
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...Option) (Writer, error) {
	cfg := &writerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatCSV:
		return NewCSVWriter(w, cfg.messages), nil
	case FormatXLSX:
		return NewXLSXWriter(w, cfg.messages), nil
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
