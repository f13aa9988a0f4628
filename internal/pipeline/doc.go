// Package pipeline is the job queue executor. A fixed-interval scheduler
// claims at most one queued job per tick and dispatches it by kind, so every
// handler runs with exclusive access to the store's entities.
package pipeline
