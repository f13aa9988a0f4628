// Package main is the reelpiped daemon entrypoint. It loads configuration,
// runs preflight checks, assembles the pipeline worker with the OpenRouter
// provider, and keeps the single-instance daemon alive until SIGINT/SIGTERM.
package main
