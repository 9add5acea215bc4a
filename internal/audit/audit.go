// Package audit records one append-only event per evaluation so compliance
// reviews can reconstruct what was screened, when, and with what outcome.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"veridical/pkg/requestcontext"
)

// Event is one evaluation record.
type Event struct {
	ID             string    `json:"id"`
	Service        string    `json:"service"`
	Key            string    `json:"key"`
	Classification string    `json:"classification"`
	RequestID      string    `json:"request_id"`
	Subject        string    `json:"subject,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Store is append-only so sinks can be swapped in tests.
type Store interface {
	Append(ctx context.Context, e Event) error
	ListByService(ctx context.Context, service string) ([]Event, error)
}

// MemoryStore keeps events in process. Sufficient here: evaluations are
// derived, so the trail is an operational convenience, not a system of
// record.
type MemoryStore struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *MemoryStore) ListByService(_ context.Context, service string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.Service == service {
			out = append(out, e)
		}
	}
	return out, nil
}

// Publisher fills in identity fields from the request context before
// appending.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit stamps and appends the event. ID and timestamp are assigned here so
// callers only describe what happened.
func (p *Publisher) Emit(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = requestcontext.Now(ctx)
	}
	if e.RequestID == "" {
		e.RequestID = requestcontext.RequestID(ctx)
	}
	if e.Subject == "" {
		e.Subject = requestcontext.Subject(ctx)
	}
	return p.store.Append(ctx, e)
}
