// Package ingest pulls candidate topics from configured feed sources and
// deduplicates them by content hash before they enter the pipeline.
package ingest
