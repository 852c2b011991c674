package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var quiet bytes.Buffer
	l := New(&quiet, false)
	l.Debug("hidden detail")
	l.Warn("shown warning")

	if strings.Contains(quiet.String(), "hidden detail") {
		t.Fatalf("expected debug output to be dropped, got %q", quiet.String())
	}
	if !strings.Contains(quiet.String(), "shown warning") {
		t.Fatalf("expected warning in output, got %q", quiet.String())
	}

	var verbose bytes.Buffer
	New(&verbose, true).Debug("resolved link", "target", "Page")
	if !strings.Contains(verbose.String(), "resolved link") || !strings.Contains(verbose.String(), "Page") {
		t.Fatalf("expected debug output when verbose, got %q", verbose.String())
	}
}
