package output

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeExport(t *testing.T, name string, format Format, opts ...Option) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	w, err := NewWriter(f, format, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAll(sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile_CSVRoundTrip(t *testing.T) {
	path := writeExport(t, "leads.csv", FormatCSV)

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, sampleRecords()) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, sampleRecords())
	}
}

func TestReadFile_XLSXRoundTrip(t *testing.T) {
	path := writeExport(t, "leads.xlsx", FormatXLSX)

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Name != "Bay Pointe Apartments" || got[0].Management != "Greystar" {
		t.Errorf("unexpected first record: %+v", got[0])
	}
	if got[1].Name != "Oakwood Gardens" || got[1].Email != "" {
		t.Errorf("unexpected second record: %+v", got[1])
	}
}

func TestReadFile_IgnoresMessageColumns(t *testing.T) {
	path := writeExport(t, "leads.csv", FormatCSV, WithMessageColumns(true))

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, sampleRecords()) {
		t.Errorf("message columns should not affect the records:\ngot:  %+v\nwant: %+v", got, sampleRecords())
	}
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	if _, err := ReadFile("leads.parquet"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestReadFile_ForeignHeaderRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.csv")
	if err := os.WriteFile(path, []byte("Foo,Bar\n1,2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("expected error for a file without export columns")
	}
}

func TestValue_UnknownColumn(t *testing.T) {
	if _, ok := Value(sampleRecords()[0], "Call Script"); ok {
		t.Error("message columns must not resolve to a stored value")
	}
}
