package main

import (
	"context"
	"fmt"
	"log/slog"

	"reelpipe/internal/config"
	"reelpipe/internal/daemon"
	"reelpipe/internal/logging"
	"reelpipe/internal/notifications"
	"reelpipe/internal/pipeline"
	"reelpipe/internal/preflight"
	"reelpipe/internal/providers"
	"reelpipe/internal/providers/openrouter"
	"reelpipe/internal/store"
)

// runPreflight executes startup checks. Advisory failures are logged and
// startup continues; blocking failures stop the daemon.
func runPreflight(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	results := preflight.RunAll(ctx, cfg)
	for _, result := range results {
		switch {
		case result.Passed:
			logger.Info("preflight check passed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		case result.Fatal:
			logger.Error("preflight check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		default:
			logger.Warn("preflight check failed",
				logging.String("check", result.Name),
				logging.String("detail", result.Detail))
		}
	}
	if preflight.FatalFailed(results) {
		return fmt.Errorf("startup checks failed")
	}
	return nil
}

// buildDaemon assembles the worker and daemon with the real providers.
func buildDaemon(cfg *config.Config, st *store.Store, logger *slog.Logger) (*daemon.Daemon, error) {
	generator := openrouter.NewGenerator(openrouter.NewClient(cfg.GetLLM()))
	notifier := notifications.NewService(cfg)
	worker := pipeline.New(cfg, st, generator, providers.UnavailableVoice{}, notifier, logger)
	return daemon.New(cfg, st, worker, logger)
}
