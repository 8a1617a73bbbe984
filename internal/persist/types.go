package persist

import "errors"

// Errors
var (
	ErrCanceled = errors.New("connection attempt canceled")
)

// Status describes the resolution state of a connection attempt.
type Status int

const (
	// StatusPending means the attempt has not resolved yet.
	StatusPending Status = iota
	// StatusDone means the attempt produced a live link.
	StatusDone
	// StatusFailed means the attempt failed with an error.
	StatusFailed
	// StatusCanceled means the attempt was canceled before resolving.
	StatusCanceled
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Handler receives lifecycle callbacks for a single link. A Source invokes
// the callbacks for one link from a single goroutine, in order; no ordering
// holds across distinct links or distinct attempts.
type Handler[T any] interface {
	// Opened is called once when the link is established.
	Opened(link T)

	// Readable is called when inbound data is available on the link.
	Readable(link T)

	// Writable is called when the link is ready to accept writes.
	Writable(link T)

	// Closed is called once when the link is gone.
	Closed(link T)
}

// Source opens one connection attempt asynchronously. Open never blocks; the
// eventual result is carried by the returned Outcome. Open may be called
// repeatedly and concurrently by independent managers.
type Source[T any] interface {
	Open(h Handler[T]) *Outcome[T]
}

// Dispatcher decides how and when a unit of work runs: inline, dropped,
// delayed, or queued onto a pool.
type Dispatcher interface {
	Dispatch(task func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(task func())

// Dispatch calls f(task).
func (f DispatcherFunc) Dispatch(task func()) { f(task) }
