package persist

import (
	"testing"
	"time"
)

func TestDirect_RunsInline(t *testing.T) {
	ran := false
	Direct().Dispatch(func() { ran = true })
	if !ran {
		t.Error("direct dispatcher did not run the task inline")
	}
}

func TestDiscard_DropsTask(t *testing.T) {
	ran := false
	Discard().Dispatch(func() { ran = true })

	// Give a stray goroutine a chance to run, if one were ever spawned.
	time.Sleep(10 * time.Millisecond)
	if ran {
		t.Error("discard dispatcher ran the task")
	}
}

func TestDelayed_RunsAfterDelay(t *testing.T) {
	done := make(chan struct{})
	start := time.Now()

	Delayed(20 * time.Millisecond).Dispatch(func() { close(done) })

	select {
	case <-done:
		if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
			t.Errorf("task ran after %v, want at least ~20ms", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delayed task never ran")
	}
}

func TestDelayed_DoesNotDeduplicate(t *testing.T) {
	done := make(chan struct{}, 3)
	d := Delayed(5 * time.Millisecond)

	for i := 0; i < 3; i++ {
		d.Dispatch(func() { done <- struct{}{} })
	}

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 3 tasks ran", i)
		}
	}
}

func TestDispatcherFunc(t *testing.T) {
	calls := 0
	d := DispatcherFunc(func(task func()) {
		calls++
		task()
	})

	ran := false
	d.Dispatch(func() { ran = true })

	if calls != 1 || !ran {
		t.Errorf("calls = %d, ran = %v, want 1 and true", calls, ran)
	}
}
