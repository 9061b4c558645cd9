package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/leadscout/leadscout/internal/leads"
)

// ReadFile loads an earlier export back into records so it can be
// merged with fresh results. The format is picked by file extension;
// csv and xlsx are supported since those are the formats a merge
// typically starts from. Message columns are generated text and are
// ignored on the way back in.
func ReadFile(path string) ([]leads.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(path)
	case ".xlsx":
		return readXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported merge input %s: expected .csv or .xlsx", path)
	}
}

func readCSVFile(path string) ([]leads.Record, error) {
	f, err := os.Open(path) //#nosec G304 -- reads a user-specified export file
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recordsFromRows(path, rows)
}

func readXLSXFile(path string) ([]leads.Record, error) {
	f, err := excelize.OpenFile(path) //#nosec G304 -- reads a user-specified export file
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if s == xlsxSheet {
			sheet = s
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recordsFromRows(path, rows)
}

// recordsFromRows maps a header row plus data rows onto records via the
// export column contract. Columns are matched by header name, so the
// input may carry them in any order; unrecognized columns are skipped.
func recordsFromRows(path string, rows [][]string) ([]leads.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: export is empty", path)
	}

	header := make([]string, len(rows[0]))
	recognized := 0
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
		if _, ok := Value(leads.Record{}, header[i]); ok {
			recognized++
		}
	}
	if recognized == 0 {
		return nil, fmt.Errorf("%s: no recognized export columns in header %v", path, rows[0])
	}

	out := make([]leads.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec leads.Record
		for i, col := range header {
			if i >= len(row) {
				break
			}
			setColumn(&rec, col, row[i])
		}
		out = append(out, rec)
	}
	return out, nil
}
