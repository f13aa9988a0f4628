package preflight

import (
	"context"

	"reelpipe/internal/config"
)

// Result reports the outcome of a single preflight check. Fatal checks block
// daemon startup; the rest are advisory (a slow or unreachable provider still
// lets the daemon come up and fail per-job).
type Result struct {
	Name   string
	Passed bool
	Fatal  bool
	Detail string
}

// RunAll executes the applicable startup checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	dataDir := CheckDirectoryAccess("Data directory", cfg.DataDir())
	dataDir.Fatal = true
	logDir := CheckDirectoryAccess("Log directory", cfg.LogDir())
	logDir.Fatal = true

	return []Result{
		dataDir,
		logDir,
		CheckDiskSpace(cfg.DataDir(), cfg.Preflight.MinFreeGiB),
		CheckLLM(ctx, cfg.GetLLM()),
	}
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

// FatalFailed reports whether any blocking check failed.
func FatalFailed(results []Result) bool {
	for _, result := range results {
		if result.Fatal && !result.Passed {
			return true
		}
	}
	return false
}
