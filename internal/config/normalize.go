package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeWorker()
	c.normalizeHealth()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("REELPIPE_LLM_API_KEY"); ok {
			c.LLM.APIKey = value
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeWorker() {
	if c.Worker.TickInterval <= 0 {
		c.Worker.TickInterval = defaultWorkerTickInterval
	}
	if c.Worker.ErrorRetryInterval <= 0 {
		c.Worker.ErrorRetryInterval = defaultErrorRetryInterval
	}
}

func (c *Config) normalizeHealth() {
	if c.Health.ProbeTimeout <= 0 {
		c.Health.ProbeTimeout = defaultProbeTimeout
	}
	if c.Health.StaleHours <= 0 {
		c.Health.StaleHours = defaultStaleHours
	}
	if c.Health.LatencyWarningMS <= 0 {
		c.Health.LatencyWarningMS = defaultLatencyWarningMS
	}
	if c.Health.WarningFailures <= 0 {
		c.Health.WarningFailures = defaultWarningFailures
	}
	if c.Health.DeadFailures <= 0 {
		c.Health.DeadFailures = defaultDeadFailures
	}
	if c.Health.AutoDisableFailures <= 0 {
		c.Health.AutoDisableFailures = defaultAutoDisableFailures
	}
	if c.Health.BatchDelayMS < 0 {
		c.Health.BatchDelayMS = defaultBatchDelayMS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
}
