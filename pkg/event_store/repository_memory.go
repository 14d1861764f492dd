package event_store

import (
	"context"
	"fmt"
	"sync"

	"github.com/eventdesk/eventdesk/pkg/event"
)

// MemoryRepository keeps events in insertion order. It backs the memory
// driver and the handler tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []event.Event
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{events: make([]event.Event, 0)}
}

func (r *MemoryRepository) ListEvents(ctx context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := event.CloneAll(r.events)
	if result == nil {
		result = []event.Event{}
	}
	return result, nil
}

func (r *MemoryRepository) GetEvent(ctx context.Context, id string) (event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return event.Event{}, ErrEventNotFound
	}
	return r.events[i].Clone(), nil
}

func (r *MemoryRepository) StoreEvent(ctx context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(e.Id) >= 0 {
		return fmt.Errorf("failed to store event: duplicate id %s", e.Id)
	}
	r.events = append(r.events, e.Clone())
	return nil
}

func (r *MemoryRepository) UpdateEvent(ctx context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(e.Id)
	if i < 0 {
		return ErrEventNotFound
	}
	r.events[i] = e.Clone()
	return nil
}

func (r *MemoryRepository) DeleteEvent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrEventNotFound
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return nil
}

func (r *MemoryRepository) CountEvents(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events), nil
}

func (r *MemoryRepository) indexOf(id string) int {
	for i, e := range r.events {
		if e.Id == id {
			return i
		}
	}
	return -1
}

// Reset clears all data
func (r *MemoryRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = make([]event.Event, 0)
}
