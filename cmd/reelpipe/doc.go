// Package main hosts the reelpipe CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into store
// queries, job queue operations, trend clustering runs, and configuration
// scaffolding. Inspection commands read the same SQLite database the daemon
// writes, so they work whether or not reelpiped is running; the `run` command
// drains the queue in the foreground for daemon-less use.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
