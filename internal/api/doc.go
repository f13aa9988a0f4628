// Package api defines transport-friendly views and converters for the CLI
// layer. It translates store models into DTOs that can be rendered or
// serialized without coupling consumers to internal types.
//
// # Key Types
//
// JobView: queue entry with kind, payload, progress, and error message.
//
// ScriptView: generation target with per-artifact readiness flags.
//
// SourceView: feed definition with probe-derived health fields.
//
// TrendView: clustered topic group with angles, hook patterns, and keywords.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Internal enums are exposed as lowercase
// strings. Timestamps use RFC3339 with milliseconds. Structured artifacts
// (storyboard, music, SEO) pass through as json.RawMessage to avoid
// double-encoding.
package api
