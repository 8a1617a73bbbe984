package persist

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// keeper keeps one logical connection alive. It holds exactly two pieces of
// shared mutable state: the one-way stop flag and the current in-flight
// outcome handle. Nothing in keeper blocks; actual work happens in the source
// and the dispatcher.
type keeper[T any] struct {
	source   Source[T]
	handler  Handler[T]
	dispatch Dispatcher
	logger   *slog.Logger

	stopped atomic.Bool

	mu      sync.Mutex
	current *Outcome[T]
}

// Maintain opens a connection through source and keeps it open: whenever an
// attempt fails, is canceled, or an established link later closes, a
// reconnect task is handed to dispatcher. The first attempt starts before
// Maintain returns. The returned handle stops the manager; see Close.
//
// The dispatcher must not run two reconnect tasks for the same manager
// concurrently. Direct, Discard, Delayed, and a single-worker pool all
// satisfy this under the source's per-attempt ordering guarantees.
func Maintain[T any](source Source[T], handler Handler[T], dispatcher Dispatcher, logger *slog.Logger) io.Closer {
	if logger == nil {
		logger = slog.Default()
	}

	k := &keeper[T]{
		source:   source,
		handler:  handler,
		dispatch: dispatcher,
		logger:   logger,
	}
	k.connect()
	return k
}

// connect opens one attempt and records its outcome handle as current.
func (k *keeper[T]) connect() {
	k.logger.Debug("opening connection attempt")

	o := k.source.Open(wrapped[T]{k})

	k.mu.Lock()
	k.current = o
	k.mu.Unlock()

	o.Notify(k.completed)
}

// completed is the completion notifier; it fires exactly once per outcome,
// on whatever goroutine the source resolves on.
func (k *keeper[T]) completed(o *Outcome[T]) {
	// Clear current only if this outcome is still the recorded attempt, so a
	// stale notifier cannot null out a newer attempt's handle.
	k.mu.Lock()
	if k.current == o {
		k.current = nil
	}
	k.mu.Unlock()

	switch o.Status() {
	case StatusDone:
		// The link's continued lifetime is now tracked solely through the
		// wrapped handler's Closed callback.
		k.logger.Debug("connection established")
		return
	case StatusFailed:
		k.logger.Debug("connection attempt failed", "error", o.Err())
	case StatusCanceled:
		k.logger.Debug("connection attempt canceled")
	}

	if !k.stopped.Load() {
		k.dispatch.Dispatch(k.reconnect)
	}
}

// reconnect is the unit of work handed to the dispatcher.
func (k *keeper[T]) reconnect() {
	if !k.stopped.Load() {
		k.connect()
	}
}

// Close stops the manager: no reconnect is ever scheduled after the stop flag
// is set, and the in-flight attempt, if any, receives a cancel request.
// Close is idempotent and safe to call concurrently. It returns without
// waiting for the underlying attempt to terminate; quiescence is eventual.
func (k *keeper[T]) Close() error {
	k.stopped.Store(true)

	k.mu.Lock()
	o := k.current
	k.mu.Unlock()

	if o != nil {
		o.Cancel()
	}
	return nil
}

// wrapped intercepts link closure for reconnect bookkeeping and forwards
// every event to the caller's handler.
type wrapped[T any] struct {
	k *keeper[T]
}

func (w wrapped[T]) Opened(link T)   { w.k.handler.Opened(link) }
func (w wrapped[T]) Readable(link T) { w.k.handler.Readable(link) }
func (w wrapped[T]) Writable(link T) { w.k.handler.Writable(link) }

// Closed commits the manager's reconnection intent before the caller learns
// the link is gone, and forwards the event even if the dispatcher panics.
func (w wrapped[T]) Closed(link T) {
	defer w.k.handler.Closed(link)

	w.k.logger.Debug("connection closed")
	if !w.k.stopped.Load() {
		w.k.dispatch.Dispatch(w.k.reconnect)
	}
}
