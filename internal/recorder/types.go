package recorder

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies a link lifecycle event.
type Kind string

const (
	KindOpened          Kind = "opened"
	KindClosed          Kind = "closed"
	KindAttemptFailed   Kind = "attempt_failed"
	KindAttemptCanceled Kind = "attempt_canceled"
)

// Event is one link lifecycle event.
type Event struct {
	ID       uuid.UUID // Primary key; filled by Record when zero
	Endpoint string    // Logical endpoint name
	Kind     Kind
	Cause    string    // Failure cause, empty otherwise
	At       time.Time // Event time; filled by Record when zero
}

// Config configures the Recorder.
type Config struct {
	BatchSize     int           // Rows per flush
	FlushInterval time.Duration // Max time between flushes
	BufferSize    int           // Initial event buffer capacity
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:     500,
		FlushInterval: 1 * time.Second,
		BufferSize:    10000,
	}
}

// Metrics contains recorder counters.
type Metrics struct {
	Inserts   int64
	Conflicts int64
	Errors    int64
	Flushes   int64
}
