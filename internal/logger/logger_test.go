package logger

import (
	"bytes"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_DefaultLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("scan starting")
	if !strings.Contains(buf.String(), "scan starting") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()

	Debug("candidate skipped")
	if strings.Contains(buf.String(), "candidate skipped") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("candidate skipped")
	if !strings.Contains(buf.String(), "candidate skipped") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestInit_Quiet(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	defer resetLogger()

	Info("listing fetched")
	Warn("page blocked")
	if buf.Len() != 0 {
		t.Error("Info and Warn should be suppressed when Quiet=true")
	}

	Error("export failed")
	if !strings.Contains(buf.String(), "export failed") {
		t.Error("Error should be logged when Quiet=true")
	}
}

func TestQuiet_OverridesDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Quiet: true, Output: buf})
	defer resetLogger()

	Debug("debug message")
	Info("info message")
	if buf.Len() != 0 {
		t.Error("Quiet should take precedence over Debug")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("records exported", "count", 12)

	output := buf.String()
	if !strings.Contains(output, "{") || !strings.Contains(output, "}") {
		t.Error("JSON format should produce JSON output")
	}
	if !strings.Contains(output, `"count":12`) {
		t.Errorf("JSON output should carry structured attrs: %q", output)
	}
}

func TestWith_CarriesAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	l := With("source", "apartments")
	l.Info("harvest complete")

	output := buf.String()
	if !strings.Contains(output, "harvest complete") || !strings.Contains(output, "apartments") {
		t.Errorf("expected message and attribute in output: %q", output)
	}
}

func TestStructuredArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Warn("page blocked", "url", "https://example.com/p1", "attempt", 2)

	output := buf.String()
	for _, want := range []string{"page blocked", "url", "attempt", "2"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output: %q", want, output)
		}
	}
}
