package recorder

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTransform(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	row := transform(Event{
		ID:       id,
		Endpoint: "feeds-primary",
		Kind:     KindAttemptFailed,
		Cause:    "dial tcp: connection refused",
		At:       at,
	})

	if row.ID != id {
		t.Errorf("ID = %v, want %v", row.ID, id)
	}
	if row.Endpoint != "feeds-primary" {
		t.Errorf("Endpoint = %q, want %q", row.Endpoint, "feeds-primary")
	}
	if row.Kind != "attempt_failed" {
		t.Errorf("Kind = %q, want %q", row.Kind, "attempt_failed")
	}
	if row.Cause != "dial tcp: connection refused" {
		t.Errorf("Cause = %q, want %q", row.Cause, "dial tcp: connection refused")
	}
	if row.At != at.UnixMicro() {
		t.Errorf("At = %d, want %d", row.At, at.UnixMicro())
	}
}

func TestRecord_FillsIDAndTimestamp(t *testing.T) {
	r := New(DefaultConfig(), nil, testLogger())

	before := time.Now()
	r.Record(Event{Endpoint: "feeds-primary", Kind: KindOpened})

	e, ok := r.input.TryReceive()
	if !ok {
		t.Fatal("no event buffered after Record")
	}
	if e.ID == uuid.Nil {
		t.Error("Record left ID unset")
	}
	if e.At.Before(before) {
		t.Errorf("At = %v, want >= %v", e.At, before)
	}
	if e.Endpoint != "feeds-primary" || e.Kind != KindOpened {
		t.Errorf("event = %+v, want endpoint and kind preserved", e)
	}
}

func TestRecord_KeepsExplicitIDAndTimestamp(t *testing.T) {
	r := New(DefaultConfig(), nil, testLogger())

	id := uuid.New()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.Record(Event{ID: id, Endpoint: "x", Kind: KindClosed, At: at})

	e, ok := r.input.TryReceive()
	if !ok {
		t.Fatal("no event buffered after Record")
	}
	if e.ID != id {
		t.Errorf("ID = %v, want %v", e.ID, id)
	}
	if !e.At.Equal(at) {
		t.Errorf("At = %v, want %v", e.At, at)
	}
}

func TestHandleEvent_AccumulatesBelowBatchSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 100
	r := New(cfg, nil, testLogger())

	for i := 0; i < 5; i++ {
		r.handleEvent(Event{ID: uuid.New(), Endpoint: "x", Kind: KindOpened, At: time.Now()})
	}

	r.batchMu.Lock()
	defer r.batchMu.Unlock()
	if len(r.batch) != 5 {
		t.Errorf("batch length = %d, want 5", len(r.batch))
	}
}
