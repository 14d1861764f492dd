package events_page

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/eventdesk/eventdesk/pkg/event"
	log "github.com/sirupsen/logrus"
)

var ErrFormClosed = errors.New("create form is not open")

// Page is the events list view: it fetches the collection, filters it and
// hosts the create form.
type Page struct {
	client event.Client

	mu    sync.Mutex
	state State
}

func NewPage(client event.Client) *Page {
	return &Page{
		client: client,
		state:  InitialState(),
	}
}

func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

func (p *Page) dispatch(a Action) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = Reduce(p.state, a)
	return p.state.clone()
}

// Mount fetches the collection. A failure leaves the list empty and the page in StatusLoadFailed.
func (p *Page) Mount(ctx context.Context) error {
	return p.fetchEvents(ctx)
}

func (p *Page) fetchEvents(ctx context.Context) error {
	events, err := p.client.ListEvents(ctx)
	if err != nil {
		log.Errorf("Error fetching events: %v", err)
		p.dispatch(EventsLoadFailed{Err: err})
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	p.dispatch(EventsLoaded{Events: events})
	log.Debugf("Events loaded: %d", len(events))
	return nil
}

func (p *Page) Search(term string) State {
	return p.dispatch(SearchApplied{Term: term})
}

func (p *Page) FilterByCategory(category string) State {
	return p.dispatch(CategoryApplied{Category: category})
}

func (p *Page) OpenCreateForm() State {
	return p.dispatch(FormOpened{})
}

func (p *Page) CloseCreateForm() State {
	return p.dispatch(FormClosed{})
}

// UpdateDraft applies change to a copy of the current draft and stores the
// result. change runs while the page is locked and must not call back into it.
func (p *Page) UpdateDraft(change func(draft *event.Event)) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	draft := p.state.Draft.Clone()
	change(&draft)
	p.state = Reduce(p.state, DraftChanged{Draft: draft})
	return p.state.clone()
}

// SubmitCreate sends the draft to the backend, closes the form with an empty
// draft and refetches the list, which resets the filtered collection.
// On failure the form stays open with the draft untouched.
func (p *Page) SubmitCreate(ctx context.Context) error {
	current := p.State()
	if !current.FormOpen {
		return ErrFormClosed
	}

	if err := p.client.CreateEvent(ctx, current.Draft); err != nil {
		log.Errorf("Error adding event: %v", err)
		p.dispatch(CreateFailed{Err: err})
		return fmt.Errorf("failed to create event: %w", err)
	}
	log.Debugf("Event created: %s", current.Draft.Title)

	p.dispatch(CreateSucceeded{})
	return p.fetchEvents(ctx)
}
