package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reelpipe/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Similarity.NGramSize != 4 {
		t.Fatalf("unexpected default ngram size %d", cfg.Similarity.NGramSize)
	}
	if cfg.Similarity.ScriptThreshold != 0.35 {
		t.Fatalf("unexpected default script threshold %v", cfg.Similarity.ScriptThreshold)
	}
	if cfg.Health.DeadFailures != 6 || cfg.Health.AutoDisableFailures != 12 {
		t.Fatalf("unexpected health defaults: %+v", cfg.Health)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Worker.TickInterval != 1 {
		t.Fatalf("unexpected tick interval %d", cfg.Worker.TickInterval)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[similarity]
script_threshold = 0.5

[worker]
tick_interval = 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Similarity.ScriptThreshold != 0.5 {
		t.Fatalf("override not applied: %v", cfg.Similarity.ScriptThreshold)
	}
	if cfg.Worker.TickInterval != 3 {
		t.Fatalf("override not applied: %d", cfg.Worker.TickInterval)
	}
	// Untouched sections keep defaults.
	if cfg.Trends.MaxClusterSize != 10 {
		t.Fatalf("expected default max cluster size, got %d", cfg.Trends.MaxClusterSize)
	}
}

func TestLoadRejectsInvalidThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[similarity]
script_threshold = 1.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateHealthOrdering(t *testing.T) {
	cfg := config.Default()
	cfg.Health.WarningFailures = 8
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "warning_failures") {
		t.Fatalf("expected warning_failures error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[similarity]") {
		t.Fatal("sample config missing similarity section")
	}
}
