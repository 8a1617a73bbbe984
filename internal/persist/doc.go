// Package persist implements the self-healing connection manager.
//
// The manager:
//   - Opens one connection attempt at a time through a pluggable Source
//   - Observes the attempt through a single-resolution Outcome handle
//   - Schedules a new attempt through a caller-supplied Dispatcher whenever
//     an attempt fails, is canceled, or an established link later closes
//   - Stops reconnecting once Close is called on the returned handle
//
// The Dispatcher decides reconnect policy: inline (Direct), never (Discard),
// or after a fixed delay (Delayed). A dispatcher that serializes tasks, such
// as a single-worker pool, guarantees that two attempts for the same manager
// never overlap.
package persist
