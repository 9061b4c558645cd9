package output

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/leadscout/leadscout/internal/leads"
)

// xlsxSheet is the workbook tab the export lands on.
const xlsxSheet = "Leads"

// XLSXWriter writes the spreadsheet binary export.
type XLSXWriter struct {
	w        io.Writer
	messages bool
}

// NewXLSXWriter creates an XLSX writer.
func NewXLSXWriter(w io.Writer, messages bool) *XLSXWriter {
	return &XLSXWriter{w: w, messages: messages}
}

// WriteAll builds the workbook and streams it to the underlying writer.
func (w *XLSXWriter) WriteAll(records []leads.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	if err := writeXLSXRow(f, 1, Columns(w.messages)); err != nil {
		return err
	}
	for i, r := range records {
		if err := writeXLSXRow(f, i+2, Row(r, w.messages)); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w.w)
	return err
}

func writeXLSXRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op; WriteAll streams the whole workbook.
func (w *XLSXWriter) Close() error {
	return nil
}
