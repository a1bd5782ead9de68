// Package audit records the immutable outcome trail of schema object
// operations. Events are write-once and append-only; a recorder is handed
// the outcome only after it is fully known.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mjczone/dappermatic-sub001/internal/model"
)

// Event is one recorded operation outcome.
type Event struct {
	ID      string
	Subject string
	Success bool
	Message string
	At      time.Time
}

func newEvent(caller model.Caller, success bool, message string) Event {
	return Event{
		ID:      uuid.NewString(),
		Subject: caller.Subject,
		Success: success,
		Message: message,
		At:      time.Now().UTC(),
	}
}

// MemoryRecorder keeps events in memory. Used in tests and as the fallback
// when no durable sink is configured.
type MemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (r *MemoryRecorder) Record(ctx context.Context, caller model.Caller, success bool, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, newEvent(caller, success, message))
}

// Events returns a copy of everything recorded so far.
func (r *MemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
