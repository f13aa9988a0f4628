// Package notifications delivers push notifications for pipeline events via
// ntfy. When no topic is configured the service degrades to a noop.
package notifications
