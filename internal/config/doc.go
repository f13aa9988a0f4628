// Package config loads, normalizes, and validates reelpipe's TOML
// configuration. Defaults cover every setting so the daemon can start with an
// empty file; normalization expands paths and backfills blanks, and validation
// rejects threshold combinations the pipeline cannot honor.
package config
