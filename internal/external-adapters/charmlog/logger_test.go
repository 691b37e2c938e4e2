package charmlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ochairo/unipkg/internal/domain/interfaces"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"nonsense", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", interfaces.F("package", "left-pad"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "left-pad") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestLogger_WithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	var l interfaces.Logger = New(&buf, "debug")

	child := l.With(interfaces.F("run_id", "abc-123"))
	child.Error("boom", interfaces.Err(errors.New("disk full")))

	out := buf.String()
	for _, want := range []string{"abc-123", "boom", "disk full"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLogger_ConfigureFromEnv(t *testing.T) {
	t.Setenv(LevelEnvVar, "debug")

	var buf bytes.Buffer
	l := New(&buf, "error")
	l.ConfigureFromEnv()
	l.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("env level not applied: %q", buf.String())
	}
}
