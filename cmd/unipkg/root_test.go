package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestExecute_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "install without package", args: []string{"install"}},
		{name: "verify with two packages", args: []string{"verify", "a", "b", "-m", "npm"}},
		{name: "unknown flag", args: []string{"verify", "left-pad", "--bogus"}},
		{name: "unknown manager", args: []string{"verify", "left-pad", "-m", "cargo"}},
		{name: "placeholder name", args: []string{"install", "package-name", "-m", "npm"}},
		{name: "option-like name", args: []string{"install", "-m", "pip", "--", "-rrequirements.txt"}},
		{name: "non-interactive needs a manager", args: []string{"install", "left-pad", "--non-interactive"}},
		{name: "unknown command", args: []string{"frobnicate"}},
		{name: "scan missing file", args: []string{"scan", "/does/not/exist.tgz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := execute(tt.args, &stdout, &stderr); code != exitUsage {
				t.Errorf("execute(%v) = %d, want %d; stderr: %s", tt.args, code, exitUsage, stderr.String())
			}
			if !strings.Contains(stderr.String(), "Error:") {
				t.Errorf("stderr = %q, want an error line", stderr.String())
			}
		})
	}
}

func TestExecute_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if code := execute([]string{"version", "--short"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("version --short exited %d: %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != BuildVersion {
		t.Errorf("version --short = %q, want %q", got, BuildVersion)
	}

	stdout.Reset()
	if code := execute([]string{"version"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("version exited %d", code)
	}
	if !strings.Contains(stdout.String(), "Commit:") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestExecute_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := execute([]string{"--help"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("--help exited %d", code)
	}
	for _, sub := range []string{"install", "upgrade", "verify", "scan", "version"} {
		if !strings.Contains(stdout.String(), sub) {
			t.Errorf("help does not list %q", sub)
		}
	}
}
