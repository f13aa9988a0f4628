package main

import (
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	line := renderStatusLine("Daemon", statusOK, "running", false)
	if !strings.Contains(line, "Daemon:") || !strings.Contains(line, "[OK] running") {
		t.Fatalf("unexpected line: %q", line)
	}

	colored := renderStatusLine("Daemon", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red wrapping: %q", colored)
	}
}

func TestHealthStatusKind(t *testing.T) {
	cases := map[string]statusKind{
		"ok":      statusOK,
		"warning": statusWarn,
		"dead":    statusError,
		"pending": statusInfo,
		"":        statusInfo,
	}
	for status, want := range cases {
		if got := healthStatusKind(status); got != want {
			t.Errorf("healthStatusKind(%q) = %d, want %d", status, got, want)
		}
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Reelpipe Status", false)
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %d lines", len(lines))
	}
	if lines[0] != "== Reelpipe Status ==" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Fatalf("rule length %d != header length %d", len(lines[1]), len(lines[0]))
	}
}
