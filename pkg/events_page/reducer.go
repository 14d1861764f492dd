package events_page

import "github.com/eventdesk/eventdesk/pkg/event"

type Action interface {
	isAction()
}

type EventsLoaded struct{ Events []event.Event }
type EventsLoadFailed struct{ Err error }
type SearchApplied struct{ Term string }
type CategoryApplied struct{ Category string }
type FormOpened struct{}
type FormClosed struct{}
type DraftChanged struct{ Draft event.Event }
type CreateSucceeded struct{}
type CreateFailed struct{ Err error }

func (EventsLoaded) isAction()     {}
func (EventsLoadFailed) isAction() {}
func (SearchApplied) isAction()    {}
func (CategoryApplied) isAction()  {}
func (FormOpened) isAction()       {}
func (FormClosed) isAction()       {}
func (DraftChanged) isAction()     {}
func (CreateSucceeded) isAction()  {}
func (CreateFailed) isAction()     {}

// Reduce returns the state that follows s after a. It never modifies s.
//
// Search and category filtering both start from the canonical collection, so
// applying one discards the effect of the other.
func Reduce(s State, a Action) State {
	next := s.clone()
	switch a := a.(type) {
	case EventsLoaded:
		next.Status = StatusReady
		next.Events = event.CloneAll(a.Events)
		if next.Events == nil {
			next.Events = []event.Event{}
		}
		// A fresh list is shown unfiltered.
		next.Filtered = event.CloneAll(next.Events)
		next.SearchTerm = ""
		next.Category = ""
		next.Err = nil
	case EventsLoadFailed:
		next.Status = StatusLoadFailed
		next.Err = a.Err
	case SearchApplied:
		next.SearchTerm = a.Term
		next.Filtered = event.Search(next.Events, a.Term)
	case CategoryApplied:
		next.Category = a.Category
		next.Filtered = event.FilterByCategory(next.Events, a.Category)
	case FormOpened:
		next.FormOpen = true
	case FormClosed:
		next.FormOpen = false
	case DraftChanged:
		next.Draft = a.Draft.Clone()
	case CreateSucceeded:
		next.FormOpen = false
		next.Draft = event.Event{}
		next.Err = nil
	case CreateFailed:
		next.Err = a.Err
	}
	return next
}
