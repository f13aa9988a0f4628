// Package store persists the pipeline's domain entities (jobs, topics,
// scripts, sources) in SQLite.
//
// Jobs are created in the queued state by producers and mutated only by the
// pipeline worker; they are retained after completion for audit and history.
// Topics and scripts are mutated incrementally by job handlers. Source health
// fields are owned exclusively by the health monitor.
//
// Timestamps are stored as RFC3339Nano text; the schema is versioned via an
// embedded schema.sql and a schema_version table.
package store
