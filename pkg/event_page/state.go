package event_page

import "github.com/eventdesk/eventdesk/pkg/event"

type Status string

const (
	StatusLoading          Status = "loading"
	StatusLoadFailed       Status = "load_failed"
	StatusViewing          Status = "viewing"
	StatusEditing          Status = "editing"
	StatusConfirmingDelete Status = "confirming_delete"
	StatusDeleted          Status = "deleted"
)

// State of the detail view. Event is the last copy confirmed by the backend,
// Draft the copy under edit.
type State struct {
	Status  Status
	EventId string
	Event   event.Event
	Draft   event.Event
	Err     error
}

func InitialState(eventId string) State {
	return State{Status: StatusLoading, EventId: eventId}
}

func (s State) clone() State {
	c := s
	c.Event = s.Event.Clone()
	c.Draft = s.Draft.Clone()
	return c
}
