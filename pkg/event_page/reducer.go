package event_page

import (
	"errors"
	"fmt"

	"github.com/eventdesk/eventdesk/pkg/event"
)

var ErrInvalidTransition = errors.New("invalid transition")

type Action interface {
	isAction()
}

type EventLoaded struct{ Event event.Event }
type EventLoadFailed struct{ Err error }
type EditStarted struct{}
type DraftChanged struct{ Draft event.Event }
type EditSaved struct{ Event event.Event }
type EditSaveFailed struct{ Err error }
type EditCanceled struct{}
type DeleteRequested struct{}
type DeleteCanceled struct{}
type DeleteSucceeded struct{}
type DeleteFailed struct{ Err error }

func (EventLoaded) isAction()     {}
func (EventLoadFailed) isAction() {}
func (EditStarted) isAction()     {}
func (DraftChanged) isAction()    {}
func (EditSaved) isAction()       {}
func (EditSaveFailed) isAction()  {}
func (EditCanceled) isAction()    {}
func (DeleteRequested) isAction() {}
func (DeleteCanceled) isAction()  {}
func (DeleteSucceeded) isAction() {}
func (DeleteFailed) isAction()    {}

// allowedFrom lists the states a may be applied in.
func allowedFrom(a Action) []Status {
	switch a.(type) {
	case EventLoaded, EventLoadFailed:
		return []Status{StatusLoading, StatusLoadFailed}
	case EditStarted, DeleteRequested:
		return []Status{StatusViewing}
	case DraftChanged, EditCanceled:
		return []Status{StatusEditing}
	case EditSaved, EditSaveFailed:
		// A save may complete after an overlapping one already left editing.
		return []Status{StatusEditing, StatusViewing}
	case DeleteCanceled, DeleteSucceeded, DeleteFailed:
		return []Status{StatusConfirmingDelete}
	}
	return nil
}

// CanApply reports whether a is a legal transition out of s.
func CanApply(s State, a Action) bool {
	for _, status := range allowedFrom(a) {
		if s.Status == status {
			return true
		}
	}
	return false
}

// Reduce returns the state that follows s after a, or ErrInvalidTransition
// when a cannot be applied in s.Status. s is never modified.
func Reduce(s State, a Action) (State, error) {
	if !CanApply(s, a) {
		return s, fmt.Errorf("%w: %T while %s", ErrInvalidTransition, a, s.Status)
	}

	next := s.clone()
	switch a := a.(type) {
	case EventLoaded:
		next.Status = StatusViewing
		next.Event = a.Event.Clone()
		next.Draft = a.Event.Clone()
		next.Err = nil
	case EventLoadFailed:
		next.Status = StatusLoadFailed
		next.Err = a.Err
	case EditStarted:
		next.Status = StatusEditing
		next.Draft = next.Event.Clone()
		next.Err = nil
	case DraftChanged:
		next.Draft = a.Draft.Clone()
	case EditSaved:
		next.Status = StatusViewing
		next.Event = a.Event.Clone()
		next.Draft = a.Event.Clone()
		next.Err = nil
	case EditSaveFailed:
		next.Err = a.Err
	case EditCanceled:
		next.Status = StatusViewing
		next.Draft = next.Event.Clone()
		next.Err = nil
	case DeleteRequested:
		next.Status = StatusConfirmingDelete
	case DeleteCanceled:
		next.Status = StatusViewing
	case DeleteSucceeded:
		next.Status = StatusDeleted
		next.Err = nil
	case DeleteFailed:
		next.Status = StatusViewing
		next.Err = a.Err
	}
	return next, nil
}
