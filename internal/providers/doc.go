// Package providers defines the generation capabilities the pipeline calls
// out to. Implementations live in subpackages; the worker depends only on
// these interfaces.
package providers
