package event_page

import (
	"context"
	"fmt"
	"sync"

	"github.com/eventdesk/eventdesk/internal/router"
	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/eventdesk/eventdesk/pkg/notification"
	log "github.com/sirupsen/logrus"
)

const (
	toastEditsSaved       = "Edits saved"
	toastEditsFailed      = "Error saving edits"
	toastEditsFailedHint  = "Please try again later."
	toastEventDeleted     = "Event deleted"
	toastEventDeleteError = "Error deleting event"
)

// Page is the detail view of a single event with its edit and delete flows.
type Page struct {
	client    event.Client
	notifier  notification.Notifier
	navigator router.Navigator

	mu    sync.Mutex
	state State
}

func NewPage(eventId string, client event.Client, notifier notification.Notifier, navigator router.Navigator) *Page {
	return &Page{
		client:    client,
		notifier:  notifier,
		navigator: navigator,
		state:     InitialState(eventId),
	}
}

func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

func (p *Page) dispatch(a Action) (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, err := Reduce(p.state, a)
	if err != nil {
		return p.state.clone(), err
	}
	p.state = next
	return next.clone(), nil
}

// guard fails with ErrInvalidTransition unless a could be applied right now.
func (p *Page) guard(a Action) (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !CanApply(p.state, a) {
		return p.state.clone(), fmt.Errorf("%w: %T while %s", ErrInvalidTransition, a, p.state.Status)
	}
	return p.state.clone(), nil
}

// Mount fetches the event. On failure the page stays blank in StatusLoadFailed.
func (p *Page) Mount(ctx context.Context) error {
	id := p.State().EventId

	e, err := p.client.GetEvent(ctx, id)
	if err != nil {
		log.Errorf("Error fetching event %s: %v", id, err)
		if _, dispatchErr := p.dispatch(EventLoadFailed{Err: err}); dispatchErr != nil {
			return dispatchErr
		}
		return fmt.Errorf("failed to fetch event: %w", err)
	}

	_, err = p.dispatch(EventLoaded{Event: e})
	return err
}

func (p *Page) StartEdit() (State, error) {
	return p.dispatch(EditStarted{})
}

// UpdateDraft applies change to a copy of the draft and stores the result.
// Only allowed while editing. change runs while the page is locked and must
// not call back into it.
func (p *Page) UpdateDraft(change func(draft *event.Event)) (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !CanApply(p.state, DraftChanged{}) {
		return p.state.clone(), fmt.Errorf("%w: %T while %s", ErrInvalidTransition, DraftChanged{}, p.state.Status)
	}
	draft := p.state.Draft.Clone()
	change(&draft)
	next, err := Reduce(p.state, DraftChanged{Draft: draft})
	if err != nil {
		return p.state.clone(), err
	}
	p.state = next
	return next.clone(), nil
}

// Save replaces the stored event with the draft. On success the draft becomes
// the displayed event; on failure the page keeps editing with the draft intact.
// Either way the outcome is shown as a toast.
func (p *Page) Save(ctx context.Context) error {
	current, err := p.guard(EditSaved{})
	if err != nil {
		return err
	}
	if current.Status != StatusEditing {
		return fmt.Errorf("%w: save while %s", ErrInvalidTransition, current.Status)
	}

	draft := current.Draft
	if err := p.client.UpdateEvent(ctx, current.EventId, draft); err != nil {
		log.Errorf("Error saving edits: %v", err)
		p.notifier.Notify(ctx, notification.Error(toastEditsFailed, toastEditsFailedHint))
		if _, dispatchErr := p.dispatch(EditSaveFailed{Err: err}); dispatchErr != nil {
			return dispatchErr
		}
		return fmt.Errorf("failed to save event: %w", err)
	}

	p.notifier.Notify(ctx, notification.Success(toastEditsSaved))
	_, err = p.dispatch(EditSaved{Event: draft})
	return err
}

// CancelEdit throws the draft away and goes back to viewing.
func (p *Page) CancelEdit() (State, error) {
	return p.dispatch(EditCanceled{})
}

func (p *Page) RequestDelete() (State, error) {
	return p.dispatch(DeleteRequested{})
}

func (p *Page) CancelDelete() (State, error) {
	return p.dispatch(DeleteCanceled{})
}

// ConfirmDelete deletes the event and navigates back to the list. On failure
// the page returns to viewing.
func (p *Page) ConfirmDelete(ctx context.Context) error {
	current, err := p.guard(DeleteSucceeded{})
	if err != nil {
		return err
	}

	if err := p.client.DeleteEvent(ctx, current.EventId); err != nil {
		log.Errorf("Error deleting event: %v", err)
		p.notifier.Notify(ctx, notification.Error(toastEventDeleteError, ""))
		if _, dispatchErr := p.dispatch(DeleteFailed{Err: err}); dispatchErr != nil {
			return dispatchErr
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}

	p.notifier.Notify(ctx, notification.Success(toastEventDeleted))
	if _, err := p.dispatch(DeleteSucceeded{}); err != nil {
		return err
	}
	if err := p.navigator.Navigate(ctx, router.EventsPath); err != nil {
		log.Errorf("Failed to navigate to the events list: %v", err)
		return err
	}
	return nil
}
