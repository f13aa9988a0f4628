package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"reelpipe/internal/api"
	"reelpipe/internal/config"
	"reelpipe/internal/logging"
	"reelpipe/internal/notifications"
	"reelpipe/internal/pipeline"
	"reelpipe/internal/providers"
	"reelpipe/internal/providers/openrouter"
	"reelpipe/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the store for the duration of fn. The CLI reads the same
// SQLite database the daemon writes, so inspection commands work whether or
// not reelpiped is running.
func (c *commandContext) withStore(fn func(*config.Config, *store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cfg, st)
}

// withService opens the store and wraps it in the API read service.
func (c *commandContext) withService(fn func(*config.Config, *store.Store, *api.Service) error) error {
	return c.withStore(func(cfg *config.Config, st *store.Store) error {
		return fn(cfg, st, api.NewService(st, st))
	})
}

// buildWorker assembles a pipeline worker with the real providers. Used by
// the foreground `run` command; the daemon builds its own.
func (c *commandContext) buildWorker(cfg *config.Config, st *store.Store) (*pipeline.Worker, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	generator := openrouter.NewGenerator(openrouter.NewClient(cfg.GetLLM()))
	notifier := notifications.NewService(cfg)
	return pipeline.New(cfg, st, generator, providers.UnavailableVoice{}, notifier, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
