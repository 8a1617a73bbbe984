package persist

import "sync"

// Outcome is a single-resolution handle for one connection attempt. It starts
// pending and resolves exactly once to done, failed, or canceled; later
// resolutions are no-ops. At most one notifier may be registered and it fires
// exactly once, on whichever goroutine resolves the outcome. Registering a
// notifier after resolution fires it immediately on the registering goroutine.
type Outcome[T any] struct {
	mu       sync.Mutex
	status   Status
	value    T
	err      error
	notifier func(*Outcome[T])
	onCancel func()
}

// NewOutcome creates a pending outcome. The optional onCancel hook is invoked
// when Cancel wins the resolution race, giving the source a chance to abort
// the underlying attempt.
func NewOutcome[T any](onCancel func()) *Outcome[T] {
	return &Outcome[T]{onCancel: onCancel}
}

// Status returns the current resolution state.
func (o *Outcome[T]) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Value returns the link produced by a done attempt, or the zero value.
func (o *Outcome[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Err returns the failure cause for a failed or canceled attempt, or nil.
func (o *Outcome[T]) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Notify registers the completion notifier. Only one notifier is supported;
// registering again before resolution replaces the previous one.
func (o *Outcome[T]) Notify(fn func(*Outcome[T])) {
	o.mu.Lock()
	if o.status == StatusPending {
		o.notifier = fn
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()
	fn(o)
}

// Resolve marks the attempt done with the given link. Returns false if the
// outcome already resolved, in which case the caller still owns the link.
func (o *Outcome[T]) Resolve(link T) bool {
	o.mu.Lock()
	if o.status != StatusPending {
		o.mu.Unlock()
		return false
	}
	o.status = StatusDone
	o.value = link
	fn := o.notifier
	o.notifier = nil
	o.mu.Unlock()

	if fn != nil {
		fn(o)
	}
	return true
}

// Fail marks the attempt failed. Returns false if the outcome already
// resolved.
func (o *Outcome[T]) Fail(err error) bool {
	o.mu.Lock()
	if o.status != StatusPending {
		o.mu.Unlock()
		return false
	}
	o.status = StatusFailed
	o.err = err
	fn := o.notifier
	o.notifier = nil
	o.mu.Unlock()

	if fn != nil {
		fn(o)
	}
	return true
}

// Cancel requests cancellation. If the attempt is still pending it resolves
// canceled and the source's cancel hook runs; the source decides whether and
// when the underlying attempt actually halts. Cancel after resolution is a
// no-op.
func (o *Outcome[T]) Cancel() {
	o.mu.Lock()
	if o.status != StatusPending {
		o.mu.Unlock()
		return
	}
	o.status = StatusCanceled
	o.err = ErrCanceled
	fn := o.notifier
	o.notifier = nil
	hook := o.onCancel
	o.mu.Unlock()

	if hook != nil {
		hook()
	}
	if fn != nil {
		fn(o)
	}
}
