package events_page

import "github.com/eventdesk/eventdesk/pkg/event"

type Status string

const (
	StatusLoading    Status = "loading"
	StatusReady      Status = "ready"
	StatusLoadFailed Status = "load_failed"
)

// State is everything the events list shows. Events is the canonical
// collection as last fetched; Filtered is what is on screen.
type State struct {
	Status     Status
	Events     []event.Event
	Filtered   []event.Event
	SearchTerm string
	Category   string
	FormOpen   bool
	Draft      event.Event
	Err        error
}

func InitialState() State {
	return State{
		Status:   StatusLoading,
		Events:   []event.Event{},
		Filtered: []event.Event{},
	}
}

// Categories are the options offered by the category filter.
func (s State) Categories() []string {
	return event.Categories(s.Events)
}

func (s State) clone() State {
	c := s
	c.Events = event.CloneAll(s.Events)
	c.Filtered = event.CloneAll(s.Filtered)
	c.Draft = s.Draft.Clone()
	return c
}
