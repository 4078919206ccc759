// Package notifications sends sweep lifecycle events to an ntfy topic when
// one is configured, and silently discards them otherwise.
package notifications
