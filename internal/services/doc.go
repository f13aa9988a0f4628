// Package services defines shared utilities consumed by the pipeline worker
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp job IDs, job kinds, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent job outcomes.
//
// Use these helpers when wiring new job handlers so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
