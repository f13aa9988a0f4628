// Package sourcehealth probes feed sources and drives the per-source health
// state machine (pending, ok, warning, dead).
//
// Probes run sequentially and the monitor is the only writer of the health
// fields on store.Source.
package sourcehealth
