// Package daemon ties the store and pipeline worker into a long-running
// background process with single-instance locking.
package daemon
