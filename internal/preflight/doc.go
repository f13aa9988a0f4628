// Package preflight runs startup environment checks: directory access, free
// disk space, and generation API reachability.
package preflight
