// Package trends derives ephemeral trend clusters from stored topics.
//
// Clusters are recomputed on demand and never persisted: the same topic
// snapshot always yields the same cluster IDs, member sets, and derived
// metadata (angles, hook patterns, keywords, pacing hints).
package trends
