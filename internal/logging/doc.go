// Package logging assembles structured slog loggers and formatting helpers
// used across reelpipe components.
//
// It centralizes level and output plumbing for the console/JSON handlers and
// exposes context-aware helpers so job handlers automatically tag log lines
// with job IDs, kinds, and correlation IDs. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
