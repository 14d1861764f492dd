package event_page

import (
	"errors"
	"testing"

	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_Transitions(t *testing.T) {
	loaded := State{Status: StatusViewing, EventId: testEventId, Event: storedEvent(), Draft: storedEvent()}
	editing := loaded
	editing.Status = StatusEditing
	confirming := loaded
	confirming.Status = StatusConfirmingDelete

	testCases := []struct {
		name   string
		from   State
		action Action
		want   Status
	}{
		{"load", InitialState(testEventId), EventLoaded{Event: storedEvent()}, StatusViewing},
		{"load failure", InitialState(testEventId), EventLoadFailed{Err: errors.New("boom")}, StatusLoadFailed},
		{"start edit", loaded, EditStarted{}, StatusEditing},
		{"save", editing, EditSaved{Event: storedEvent()}, StatusViewing},
		{"late save", loaded, EditSaved{Event: storedEvent()}, StatusViewing},
		{"save failure", editing, EditSaveFailed{Err: errors.New("boom")}, StatusEditing},
		{"cancel edit", editing, EditCanceled{}, StatusViewing},
		{"request delete", loaded, DeleteRequested{}, StatusConfirmingDelete},
		{"cancel delete", confirming, DeleteCanceled{}, StatusViewing},
		{"delete", confirming, DeleteSucceeded{}, StatusDeleted},
		{"delete failure", confirming, DeleteFailed{Err: errors.New("boom")}, StatusViewing},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Reduce(tc.from, tc.action)

			require.NoError(t, err)
			assert.Equal(t, tc.want, next.Status)
		})
	}
}

func TestReduce_InvalidTransitions(t *testing.T) {
	loaded := State{Status: StatusViewing, Event: storedEvent(), Draft: storedEvent()}
	deleted := State{Status: StatusDeleted}

	testCases := []struct {
		name   string
		from   State
		action Action
	}{
		{"edit before load", InitialState(testEventId), EditStarted{}},
		{"draft change while viewing", loaded, DraftChanged{Draft: event.Event{}}},
		{"confirm without request", loaded, DeleteSucceeded{}},
		{"edit after delete", deleted, EditStarted{}},
		{"reload after delete", deleted, EventLoaded{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Reduce(tc.from, tc.action)

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tc.from.Status, next.Status)
		})
	}
}

func TestReduce_EditStartedCopiesDisplayRecord(t *testing.T) {
	state := State{Status: StatusViewing, Event: storedEvent(), Draft: event.Event{Title: "stale"}}

	next, err := Reduce(state, EditStarted{})

	require.NoError(t, err)
	assert.True(t, next.Draft.Equal(storedEvent()))
	next.Draft.Categories[0] = "changed"
	assert.Equal(t, "outdoor", next.Event.Categories[0])
}
