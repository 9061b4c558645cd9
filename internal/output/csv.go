package output

import (
	"encoding/csv"
	"io"

	"github.com/leadscout/leadscout/internal/leads"
)

// CSVWriter writes the comma-delimited export: a header row followed by
// one row per record.
type CSVWriter struct {
	w        *csv.Writer
	messages bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer, messages bool) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), messages: messages}
}

// WriteAll writes the header and every record.
func (w *CSVWriter) WriteAll(records []leads.Record) error {
	if err := w.w.Write(Columns(w.messages)); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.w.Write(Row(r, w.messages)); err != nil {
			return err
		}
	}
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	w.w.Flush()
	return w.w.Error()
}
