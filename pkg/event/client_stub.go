package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type ClientStub struct {
	mu        sync.RWMutex
	events    []Event
	nextId    int
	calls     map[string]int
	updates   []Event
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func NewClientStub(events ...Event) *ClientStub {
	c := &ClientStub{
		calls:  make(map[string]int),
		nextId: 1,
	}
	c.SetEvents(events)
	return c
}

func (c *ClientStub) ListEvents(ctx context.Context) ([]Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[OpList]++

	if c.listErr != nil {
		return nil, &FetchError{Operation: OpList, Err: c.listErr}
	}
	return CloneAll(c.events), nil
}

func (c *ClientStub) GetEvent(ctx context.Context, id string) (Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[OpGet]++

	if c.getErr != nil {
		return Event{}, &FetchError{Operation: OpGet, Err: c.getErr}
	}
	i := c.indexOf(id)
	if i < 0 {
		return Event{}, &FetchError{Operation: OpGet, StatusCode: 404, Err: fmt.Errorf("event %s not found", id)}
	}
	return c.events[i].Clone(), nil
}

func (c *ClientStub) CreateEvent(ctx context.Context, draft Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[OpCreate]++

	if c.createErr != nil {
		return &FetchError{Operation: OpCreate, Err: c.createErr}
	}
	created := draft.Clone()
	created.Id = fmt.Sprintf("event-%d", c.nextId)
	c.nextId++
	c.events = append(c.events, created)
	return nil
}

func (c *ClientStub) UpdateEvent(ctx context.Context, id string, draft Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[OpUpdate]++

	if c.updateErr != nil {
		return &FetchError{Operation: OpUpdate, StatusCode: 500, Err: c.updateErr}
	}
	i := c.indexOf(id)
	if i < 0 {
		return &FetchError{Operation: OpUpdate, StatusCode: 404, Err: fmt.Errorf("event %s not found", id)}
	}
	updated := draft.Clone()
	updated.Id = id
	c.events[i] = updated
	c.updates = append(c.updates, updated.Clone())
	return nil
}

func (c *ClientStub) DeleteEvent(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[OpDelete]++

	if c.deleteErr != nil {
		return &FetchError{Operation: OpDelete, StatusCode: 500, Err: c.deleteErr}
	}
	i := c.indexOf(id)
	if i < 0 {
		return &FetchError{Operation: OpDelete, StatusCode: 404, Err: fmt.Errorf("event %s not found", id)}
	}
	c.events = append(c.events[:i], c.events[i+1:]...)
	return nil
}

func (c *ClientStub) indexOf(id string) int {
	for i, e := range c.events {
		if e.Id == id {
			return i
		}
	}
	return -1
}

// Helper methods for test setup

func (c *ClientStub) SetEvents(events []Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = CloneAll(events)
	if c.events == nil {
		c.events = []Event{}
	}
}

// Events returns what the stub currently holds.
func (c *ClientStub) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CloneAll(c.events)
}

// Updates returns every record accepted by UpdateEvent, in call order.
func (c *ClientStub) Updates() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CloneAll(c.updates)
}

func (c *ClientStub) Calls(operation string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calls[operation]
}

// Error setters for testing error scenarios

func (c *ClientStub) SetListError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listErr = err
}

func (c *ClientStub) SetGetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getErr = err
}

func (c *ClientStub) SetCreateError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createErr = err
}

func (c *ClientStub) SetUpdateError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateErr = err
}

func (c *ClientStub) SetDeleteError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteErr = err
}

var ErrClientTestError = errors.New("client test error")
