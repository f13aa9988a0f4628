package logging

import (
	"context"
	"log/slog"
	"testing"

	"reelpipe/internal/services"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithJobID(context.Background(), 7)
	ctx = services.WithJobKind(ctx, "fetch_topics")

	fields := ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 context fields, got %d", len(fields))
	}

	logger := WithContext(ctx, NewNop())
	if logger == nil {
		t.Fatal("expected logger")
	}
}

func TestWithContextNilLogger(t *testing.T) {
	if logger := WithContext(context.Background(), nil); logger == nil {
		t.Fatal("expected fallback nop logger")
	}
}
