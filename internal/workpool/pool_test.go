package workpool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := New(2, 16, testLogger())

	var mu sync.Mutex
	ran := 0
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		ok := p.Submit(func() {
			defer wg.Done()
			mu.Lock()
			ran++
			mu.Unlock()
		})
		if !ok {
			t.Fatalf("Submit returned false for task %d", i)
		}
	}
	wg.Wait()

	if ran != 10 {
		t.Errorf("ran = %d, want 10", ran)
	}

	if err := p.Shutdown(context.Background(), time.Second); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestPool_SingleWorkerSerializes(t *testing.T) {
	p := New(1, 16, testLogger())

	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		p.Submit(func() {
			defer wg.Done()
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
		})
	}
	wg.Wait()

	if maxInFlight != 1 {
		t.Errorf("max in-flight tasks = %d, want 1", maxInFlight)
	}

	p.Shutdown(context.Background(), time.Second)
}

func TestPool_SubmitAfterShutdownRefused(t *testing.T) {
	p := New(1, 4, testLogger())

	if err := p.Shutdown(context.Background(), time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if p.Submit(func() {}) {
		t.Error("Submit after Shutdown returned true, want false")
	}
}

func TestPool_CleanShutdownDrainsQueue(t *testing.T) {
	p := New(1, 16, testLogger())

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 5; i++ {
		p.Submit(func() {
			time.Sleep(2 * time.Millisecond)
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}

	if err := p.Shutdown(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if ran != 5 {
		t.Errorf("ran = %d, want 5 (queued tasks drained before clean shutdown)", ran)
	}
}

func TestPool_ShutdownTimeoutReportsUnclean(t *testing.T) {
	p := New(1, 4, testLogger())

	release := make(chan struct{})
	p.Submit(func() { <-release })
	defer close(release)

	err := p.Shutdown(context.Background(), 20*time.Millisecond)
	if !errors.Is(err, ErrUncleanShutdown) {
		t.Errorf("Shutdown() error = %v, want ErrUncleanShutdown", err)
	}
}

func TestPool_ShutdownInterruptedReportsDistinctError(t *testing.T) {
	p := New(1, 4, testLogger())

	release := make(chan struct{})
	p.Submit(func() { <-release })
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Shutdown(ctx, time.Minute)
	if !errors.Is(err, ErrShutdownInterrupted) {
		t.Errorf("Shutdown() error = %v, want ErrShutdownInterrupted", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Shutdown() error = %v, want wrapped context.Canceled", err)
	}
}

func TestPool_ShutdownTwiceIsSafe(t *testing.T) {
	p := New(1, 4, testLogger())

	if err := p.Shutdown(context.Background(), time.Second); err != nil {
		t.Fatalf("first Shutdown() error = %v", err)
	}
	if err := p.Shutdown(context.Background(), time.Second); err != nil {
		t.Fatalf("second Shutdown() error = %v", err)
	}
}

func TestPool_QueueFullDropsTask(t *testing.T) {
	p := New(1, 1, testLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	p.Submit(func() { close(started); <-release })
	<-started           // worker is busy
	p.Submit(func() {}) // fills the queue

	// Queue is now full; this submission is dropped.
	accepted := false
	for i := 0; i < 3; i++ {
		if p.Submit(func() {}) {
			accepted = true
		}
	}
	if accepted {
		t.Error("Submit succeeded with a full queue, want drop")
	}

	close(release)
	p.Shutdown(context.Background(), time.Second)
}
