package events_page

import (
	"errors"
	"testing"

	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_DoesNotModifyPreviousState(t *testing.T) {
	loaded := Reduce(InitialState(), EventsLoaded{Events: testEvents()})

	searched := Reduce(loaded, SearchApplied{Term: "pottery"})

	assert.Len(t, loaded.Filtered, 3)
	assert.Len(t, searched.Filtered, 1)
	assert.Equal(t, "", loaded.SearchTerm)
}

func TestReduce_LoadClearsFilters(t *testing.T) {
	loaded := Reduce(InitialState(), EventsLoaded{Events: testEvents()})
	filtered := Reduce(Reduce(loaded, SearchApplied{Term: "music"}), CategoryApplied{Category: "film"})
	require.Equal(t, "film", filtered.Category)

	reloaded := Reduce(filtered, EventsLoaded{Events: testEvents()})

	assert.Len(t, reloaded.Filtered, 3)
	assert.Equal(t, "", reloaded.SearchTerm)
	assert.Equal(t, "", reloaded.Category)
}

func TestReduce_LoadFailureKeepsEmptyList(t *testing.T) {
	failure := errors.New("boom")

	state := Reduce(InitialState(), EventsLoadFailed{Err: failure})

	assert.Equal(t, StatusLoadFailed, state.Status)
	assert.Empty(t, state.Filtered)
	assert.Equal(t, failure, state.Err)
}

func TestReduce_ReloadClearsError(t *testing.T) {
	state := Reduce(InitialState(), EventsLoadFailed{Err: errors.New("boom")})

	state = Reduce(state, EventsLoaded{Events: nil})

	assert.Equal(t, StatusReady, state.Status)
	assert.NoError(t, state.Err)
	assert.NotNil(t, state.Events)
	assert.Empty(t, state.Filtered)
}

func TestReduce_CreateFlow(t *testing.T) {
	state := Reduce(InitialState(), FormOpened{})
	assert.True(t, state.FormOpen)

	state = Reduce(state, DraftChanged{Draft: event.Event{Title: "Quiz", Category: "pub"}})
	assert.Equal(t, "Quiz", state.Draft.Title)

	failed := Reduce(state, CreateFailed{Err: errors.New("boom")})
	assert.True(t, failed.FormOpen)
	assert.Equal(t, "Quiz", failed.Draft.Title)
	assert.Error(t, failed.Err)

	done := Reduce(failed, CreateSucceeded{})
	assert.False(t, done.FormOpen)
	assert.True(t, done.Draft.Equal(event.Event{}))
	assert.NoError(t, done.Err)

	closed := Reduce(Reduce(InitialState(), FormOpened{}), FormClosed{})
	assert.False(t, closed.FormOpen)
}
