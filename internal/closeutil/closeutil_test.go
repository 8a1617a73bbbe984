package closeutil

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

type errCloser struct {
	calls int
	err   error
}

func (c *errCloser) Close() error {
	c.calls++
	return c.err
}

type panicCloser struct{}

func (panicCloser) Close() error {
	panic("close exploded")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClose_NilResource(t *testing.T) {
	// Must not panic.
	Close(nil)
	CloseWith(testLogger(), nil)
}

func TestClose_Succeeds(t *testing.T) {
	c := &errCloser{}
	CloseWith(testLogger(), c)

	if c.calls != 1 {
		t.Errorf("Close called %d times, want 1", c.calls)
	}
}

func TestClose_SwallowsError(t *testing.T) {
	c := &errCloser{err: errors.New("already closed")}

	// Must not panic or propagate.
	CloseWith(testLogger(), c)

	if c.calls != 1 {
		t.Errorf("Close called %d times, want 1", c.calls)
	}
}

func TestClose_SwallowsPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic escaped CloseWith: %v", r)
		}
	}()

	CloseWith(testLogger(), panicCloser{})
}

func TestCloserFunc(t *testing.T) {
	calls := 0
	f := CloserFunc(func() error {
		calls++
		return nil
	})

	CloseWith(testLogger(), f)

	if calls != 1 {
		t.Errorf("CloserFunc called %d times, want 1", calls)
	}
}

func TestCloserFunc_Error(t *testing.T) {
	want := errors.New("teardown failed")
	f := CloserFunc(func() error { return want })

	if got := f.Close(); got != want {
		t.Errorf("Close() = %v, want %v", got, want)
	}

	// And through the best-effort path, the error is swallowed.
	CloseWith(testLogger(), f)
}
