package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSimilarity(); err != nil {
		return err
	}
	if err := c.validateTrends(); err != nil {
		return err
	}
	if err := c.validateHealth(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSimilarity() error {
	if c.Similarity.NGramSize < 1 {
		return errors.New("similarity.ngram_size must be at least 1")
	}
	if c.Similarity.ScriptThreshold < 0 || c.Similarity.ScriptThreshold > 1 {
		return errors.New("similarity.script_threshold must be between 0 and 1")
	}
	if c.Similarity.TopicThreshold < 0 || c.Similarity.TopicThreshold > 1 {
		return errors.New("similarity.topic_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateTrends() error {
	if c.Trends.ClusterThreshold < 0 || c.Trends.ClusterThreshold > 1 {
		return errors.New("trends.cluster_threshold must be between 0 and 1")
	}
	if c.Trends.MinClusterSize < 1 {
		return errors.New("trends.min_cluster_size must be at least 1")
	}
	if c.Trends.MaxClusterSize < c.Trends.MinClusterSize {
		return fmt.Errorf("trends.max_cluster_size must be at least min_cluster_size (%d)", c.Trends.MinClusterSize)
	}
	return nil
}

func (c *Config) validateHealth() error {
	if c.Health.WarningFailures >= c.Health.DeadFailures {
		return errors.New("health.warning_failures must be below health.dead_failures")
	}
	if c.Health.DeadFailures > c.Health.AutoDisableFailures {
		return errors.New("health.dead_failures must not exceed health.auto_disable_failures")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
