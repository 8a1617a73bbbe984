// Package closeutil provides best-effort resource cleanup.
//
// Close never fails: errors and panics raised while closing are swallowed and
// at most logged. It is the uniform teardown primitive for cleanup paths where
// a close failure must not cascade into further failures.
package closeutil

import (
	"io"
	"log/slog"
)

// Close closes a resource, logging a debug message if closing fails. A nil
// resource is a no-op. Close never panics.
func Close(resource io.Closer) {
	CloseWith(nil, resource)
}

// CloseWith is Close with an explicit logger. A nil logger falls back to
// slog.Default().
func CloseWith(logger *slog.Logger, resource io.Closer) {
	if resource == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Debug("panic while closing resource", "panic", r)
		}
	}()

	if err := resource.Close(); err != nil {
		logger.Debug("closing resource failed", "error", err)
	}
}

// CloserFunc adapts a plain close function to io.Closer, for resources that
// do not natively expose a Close method.
type CloserFunc func() error

// Close calls f.
func (f CloserFunc) Close() error { return f() }
