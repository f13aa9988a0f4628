package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// LLM contains connection settings for the script-generation model.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Voice contains text-to-speech settings. When no provider is configured the
// pipeline runs in fallback mode and voice generation produces no asset.
type Voice struct {
	Enabled     bool   `toml:"enabled"`
	StylePreset string `toml:"style_preset"`
}

// Worker contains scheduler timing for the job pipeline.
type Worker struct {
	TickInterval       int `toml:"tick_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
}

// Similarity contains thresholds for the duplicate-rejection engine.
type Similarity struct {
	NGramSize       int     `toml:"ngram_size"`
	ScriptThreshold float64 `toml:"script_threshold"`
	TopicThreshold  float64 `toml:"topic_threshold"`
}

// Trends contains clustering parameters for trend extraction.
type Trends struct {
	ClusterThreshold float64 `toml:"cluster_threshold"`
	MinClusterSize   int     `toml:"min_cluster_size"`
	MaxClusterSize   int     `toml:"max_cluster_size"`
}

// Health contains source health monitoring thresholds.
type Health struct {
	ProbeTimeout        int     `toml:"probe_timeout"`
	StaleHours          float64 `toml:"stale_hours"`
	LatencyWarningMS    float64 `toml:"latency_warning_ms"`
	WarningFailures     int     `toml:"warning_failures"`
	DeadFailures        int     `toml:"dead_failures"`
	AutoDisableFailures int     `toml:"auto_disable_failures"`
	BatchDelayMS        int     `toml:"batch_delay_ms"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Preflight contains startup check thresholds.
type Preflight struct {
	MinFreeGiB int `toml:"min_free_gib"`
}

// Config encapsulates all configuration values for reelpipe.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - LLM: connection settings for AI script generation
//   - Voice: text-to-speech settings (fallback mode when disabled)
//   - Worker: scheduler tick and retry intervals
//   - Similarity: duplicate-rejection thresholds
//   - Trends: topic clustering parameters
//   - Health: source probe thresholds and escalation limits
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
//   - Preflight: startup check thresholds
type Config struct {
	Paths         Paths         `toml:"paths"`
	LLM           LLM           `toml:"llm"`
	Voice         Voice         `toml:"voice"`
	Worker        Worker        `toml:"worker"`
	Similarity    Similarity    `toml:"similarity"`
	Trends        Trends        `toml:"trends"`
	Health        Health        `toml:"health"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
	Preflight     Preflight     `toml:"preflight"`
}

// DataDir returns the normalized data directory.
func (c *Config) DataDir() string { return c.Paths.DataDir }

// LogDir returns the normalized log directory.
func (c *Config) LogDir() string { return c.Paths.LogDir }

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/reelpipe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("reelpipe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the trimmed LLM connection settings handed to the provider client.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the shared LLM connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}
