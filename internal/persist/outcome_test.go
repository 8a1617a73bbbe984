package persist

import (
	"errors"
	"testing"
)

func TestOutcome_ResolveOnce(t *testing.T) {
	o := NewOutcome[int](nil)

	if o.Status() != StatusPending {
		t.Fatalf("Status() = %v, want pending", o.Status())
	}

	if !o.Resolve(42) {
		t.Fatal("Resolve() = false, want true")
	}
	if o.Status() != StatusDone {
		t.Errorf("Status() = %v, want done", o.Status())
	}
	if o.Value() != 42 {
		t.Errorf("Value() = %d, want 42", o.Value())
	}

	// Later resolutions lose
	if o.Fail(errors.New("late")) {
		t.Error("Fail() after Resolve() = true, want false")
	}
	if o.Resolve(7) {
		t.Error("second Resolve() = true, want false")
	}
	if o.Status() != StatusDone {
		t.Errorf("Status() = %v after late resolutions, want done", o.Status())
	}
}

func TestOutcome_Fail(t *testing.T) {
	o := NewOutcome[int](nil)
	cause := errors.New("dial refused")

	if !o.Fail(cause) {
		t.Fatal("Fail() = false, want true")
	}
	if o.Status() != StatusFailed {
		t.Errorf("Status() = %v, want failed", o.Status())
	}
	if o.Err() != cause {
		t.Errorf("Err() = %v, want %v", o.Err(), cause)
	}
}

func TestOutcome_NotifierFiresExactlyOnce(t *testing.T) {
	o := NewOutcome[int](nil)

	fired := 0
	o.Notify(func(got *Outcome[int]) {
		fired++
		if got != o {
			t.Error("notifier received a different outcome")
		}
	})

	o.Resolve(1)
	o.Fail(errors.New("late"))
	o.Cancel()

	if fired != 1 {
		t.Errorf("notifier fired %d times, want 1", fired)
	}
}

func TestOutcome_NotifyAfterResolutionFiresImmediately(t *testing.T) {
	o := NewOutcome[int](nil)
	o.Resolve(9)

	fired := false
	o.Notify(func(got *Outcome[int]) {
		fired = true
		if got.Status() != StatusDone {
			t.Errorf("Status() in notifier = %v, want done", got.Status())
		}
	})

	if !fired {
		t.Error("notifier did not fire on registration after resolution")
	}
}

func TestOutcome_CancelRunsHook(t *testing.T) {
	hookCalls := 0
	o := NewOutcome[int](func() { hookCalls++ })

	o.Cancel()

	if o.Status() != StatusCanceled {
		t.Errorf("Status() = %v, want canceled", o.Status())
	}
	if !errors.Is(o.Err(), ErrCanceled) {
		t.Errorf("Err() = %v, want ErrCanceled", o.Err())
	}
	if hookCalls != 1 {
		t.Errorf("cancel hook ran %d times, want 1", hookCalls)
	}

	// Cancel after resolution is a no-op
	o.Cancel()
	if hookCalls != 1 {
		t.Errorf("cancel hook ran %d times after second Cancel, want 1", hookCalls)
	}
}

func TestOutcome_CancelAfterResolveDoesNothing(t *testing.T) {
	hookCalls := 0
	o := NewOutcome[int](func() { hookCalls++ })

	o.Resolve(3)
	o.Cancel()

	if o.Status() != StatusDone {
		t.Errorf("Status() = %v, want done", o.Status())
	}
	if hookCalls != 0 {
		t.Errorf("cancel hook ran %d times, want 0", hookCalls)
	}
}

func TestStatus_String(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusPending, "pending"},
		{StatusDone, "done"},
		{StatusFailed, "failed"},
		{StatusCanceled, "canceled"},
		{Status(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.status.String(); got != c.want {
			t.Errorf("Status(%d).String() = %q, want %q", c.status, got, c.want)
		}
	}
}
