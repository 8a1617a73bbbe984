package recorder

import (
	"github.com/linkkeeper-io/linkkeeper/internal/persist"
)

// Tap is a handler decorator that records opened and closed events while
// forwarding every callback to the inner handler. Recording never substitutes
// for delivery.
type Tap[T any] struct {
	endpoint string
	rec      *Recorder
	inner    persist.Handler[T]
}

// NewTap creates a Tap for one endpoint. A nil inner handler defaults to the
// no-op handler.
func NewTap[T any](endpoint string, rec *Recorder, inner persist.Handler[T]) *Tap[T] {
	if inner == nil {
		inner = persist.NopHandler[T]()
	}
	return &Tap[T]{
		endpoint: endpoint,
		rec:      rec,
		inner:    inner,
	}
}

// Opened records the event, then forwards.
func (t *Tap[T]) Opened(link T) {
	t.rec.Record(Event{Endpoint: t.endpoint, Kind: KindOpened})
	t.inner.Opened(link)
}

// Readable forwards unchanged.
func (t *Tap[T]) Readable(link T) { t.inner.Readable(link) }

// Writable forwards unchanged.
func (t *Tap[T]) Writable(link T) { t.inner.Writable(link) }

// Closed records the event, then forwards.
func (t *Tap[T]) Closed(link T) {
	t.rec.Record(Event{Endpoint: t.endpoint, Kind: KindClosed})
	t.inner.Closed(link)
}

// SourceTap is a source decorator that records failed and canceled attempts.
// It mirrors each inner outcome onto a fresh handle so the manager's single
// completion notifier stays available to the manager.
type SourceTap[T any] struct {
	endpoint string
	rec      *Recorder
	source   persist.Source[T]
}

// NewSourceTap creates a SourceTap for one endpoint.
func NewSourceTap[T any](endpoint string, rec *Recorder, source persist.Source[T]) *SourceTap[T] {
	return &SourceTap[T]{
		endpoint: endpoint,
		rec:      rec,
		source:   source,
	}
}

// Open opens an attempt through the inner source and returns a mirrored
// outcome. Canceling the mirror cancels the inner attempt.
func (s *SourceTap[T]) Open(h persist.Handler[T]) *persist.Outcome[T] {
	inner := s.source.Open(h)
	out := persist.NewOutcome[T](inner.Cancel)

	inner.Notify(func(o *persist.Outcome[T]) {
		switch o.Status() {
		case persist.StatusDone:
			out.Resolve(o.Value())
		case persist.StatusFailed:
			s.rec.Record(Event{
				Endpoint: s.endpoint,
				Kind:     KindAttemptFailed,
				Cause:    o.Err().Error(),
			})
			out.Fail(o.Err())
		case persist.StatusCanceled:
			s.rec.Record(Event{
				Endpoint: s.endpoint,
				Kind:     KindAttemptCanceled,
			})
			out.Cancel()
		}
	})

	return out
}
