// Package recorder persists link lifecycle events.
//
// Events flow through a growable in-memory buffer into a batch writer that
// flushes to the link_events table on size or interval. Tap and SourceTap
// decorate a manager's handler and source to observe link activity without
// suppressing any caller-visible event.
package recorder
