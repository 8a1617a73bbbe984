// Package wsconn implements a WebSocket connection source for the
// connection manager.
//
// A Source dials asynchronously and resolves each attempt through an outcome
// handle. Every handler callback for one link is delivered from a single
// goroutine, in order: Opened once, Writable once, Readable per buffered
// inbound message, and Closed exactly once when the link drops. Stale links
// (no ping traffic within the configured window) are closed, which surfaces
// as a normal Closed event.
package wsconn
