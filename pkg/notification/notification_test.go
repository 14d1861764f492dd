package notification

import (
	"context"
	"testing"
	"time"

	"github.com/eventdesk/eventdesk/internal/event_bus"
	"github.com/eventdesk/eventdesk/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusNotifier_Notify(t *testing.T) {
	// given
	bus := event_bus.NewEventBus()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &utils.MockClock{FixedNow: now}
	notifier := NewBusNotifier(bus, clock, 0)

	var shown []event_bus.ToastShown
	event_bus.SubscribeTyped[event_bus.ToastShown](bus, event_bus.ToastShownEvent, func(e event_bus.EventT[event_bus.ToastShown]) error {
		shown = append(shown, e.Data)
		return nil
	})

	// when
	notifier.Notify(context.Background(), Error("Error saving edits", "Please try again later."))

	// then
	require.Len(t, shown, 1)
	assert.Equal(t, "Error saving edits", shown[0].Title)
	assert.Equal(t, "Please try again later.", shown[0].Description)
	assert.Equal(t, "error", shown[0].Status)
	assert.Equal(t, DefaultDuration, shown[0].Duration)
	assert.Equal(t, now, shown[0].ShownAt)

	clock.Advance(2 * time.Second)
	notifier.Notify(context.Background(), Success("Edits saved"))
	require.Len(t, shown, 2)
	assert.Equal(t, now.Add(2*time.Second), shown[1].ShownAt)
	assert.Equal(t, "success", shown[1].Status)
}

func TestBusNotifier_KeepsExplicitDuration(t *testing.T) {
	bus := event_bus.NewEventBus()
	notifier := NewBusNotifier(bus, utils.SystemClock{}, 5*time.Second)

	var shown event_bus.ToastShown
	event_bus.SubscribeTyped[event_bus.ToastShown](bus, event_bus.ToastShownEvent, func(e event_bus.EventT[event_bus.ToastShown]) error {
		shown = e.Data
		return nil
	})

	notifier.Notify(context.Background(), Success("Edits saved"))
	assert.Equal(t, 5*time.Second, shown.Duration)

	toast := Success("Event deleted")
	toast.Duration = time.Second
	notifier.Notify(context.Background(), toast)
	assert.Equal(t, time.Second, shown.Duration)
}

func TestBusNotifier_HandlerFailureDoesNotPanic(t *testing.T) {
	bus := event_bus.NewEventBus()
	bus.Subscribe(event_bus.ToastShownEvent, func(e event_bus.Event) error {
		panic("renderer crashed")
	})
	notifier := NewBusNotifier(bus, utils.SystemClock{}, time.Second)

	assert.NotPanics(t, func() {
		notifier.Notify(context.Background(), Success("Edits saved"))
	})
}

func TestToast_ExpiresAt(t *testing.T) {
	shownAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	toast := Toast{ShownAt: shownAt, Duration: DefaultDuration}

	assert.Equal(t, shownAt.Add(3*time.Second), toast.ExpiresAt())
}

func TestRecorder_Count(t *testing.T) {
	recorder := NewRecorder()
	recorder.Notify(context.Background(), Success("Edits saved"))
	recorder.Notify(context.Background(), Error("Error deleting event", ""))
	recorder.Notify(context.Background(), Error("Error saving edits", "Please try again later."))

	assert.Equal(t, 1, recorder.Count(StatusSuccess))
	assert.Equal(t, 2, recorder.Count(StatusError))
	assert.Len(t, recorder.Toasts(), 3)
}
