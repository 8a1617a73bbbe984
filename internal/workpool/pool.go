// Package workpool provides a fixed-size task-execution pool with
// bounded-wait shutdown.
//
// A single-worker pool serializes every task it runs, which makes it a safe
// reconnect dispatcher for the connection manager: two reconnect attempts for
// the same manager can never overlap.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Shutdown failure kinds. Both mean the pool was force-abandoned; workers
// finish their current task and exit without draining the queue.
var (
	ErrUncleanShutdown     = errors.New("pool did not shut down cleanly (abandoned)")
	ErrShutdownInterrupted = errors.New("interrupted while awaiting pool shutdown")
)

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	logger *slog.Logger
	tasks  chan func()
	quit   chan struct{}
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool

	quitOnce sync.Once
}

// New creates a pool with the given worker count and queue size and starts
// its workers.
func New(workers, queueSize int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		logger: logger,
		tasks:  make(chan func(), queueSize),
		quit:   make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit queues a task for execution. Returns false if the pool is shutting
// down or the queue is full; the task is dropped in both cases.
func (p *Pool) Submit(task func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return false
	}

	select {
	case p.tasks <- task:
		return true
	default:
		p.logger.Warn("task queue full, dropping task")
		return false
	}
}

// Dispatch submits a task, dropping it if the pool refuses. Satisfies the
// connection manager's Dispatcher interface.
func (p *Pool) Dispatch(task func()) {
	p.Submit(task)
}

// Shutdown stops the pool: no further submissions are accepted, and queued
// tasks are given up to grace to finish. On timeout the pool is abandoned and
// ErrUncleanShutdown is returned. If ctx is canceled while waiting, the pool
// is abandoned and ErrShutdownInterrupted is returned wrapping the context's
// error. Shutdown is safe to call more than once.
func (p *Pool) Shutdown(ctx context.Context, grace time.Duration) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(grace):
		p.abandon()
		return ErrUncleanShutdown
	case <-ctx.Done():
		p.abandon()
		return fmt.Errorf("%w: %w", ErrShutdownInterrupted, ctx.Err())
	}
}

// abandon tells workers to exit without draining the queue.
func (p *Pool) abandon() {
	p.quitOnce.Do(func() {
		close(p.quit)
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.quit:
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			task()
		}
	}
}
