package notification

import (
	"context"
	"time"

	"github.com/eventdesk/eventdesk/internal/event_bus"
	"github.com/eventdesk/eventdesk/internal/utils"
	log "github.com/sirupsen/logrus"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

const DefaultDuration = 3 * time.Second

// Toast is a transient, user-visible message.
type Toast struct {
	Title       string
	Description string
	Status      Status
	Duration    time.Duration
	ShownAt     time.Time
}

// ExpiresAt is when the toast should disappear.
func (t Toast) ExpiresAt() time.Time {
	return t.ShownAt.Add(t.Duration)
}

type Notifier interface {
	Notify(ctx context.Context, toast Toast)
}

// BusNotifier publishes toasts on the event bus as ToastShownEvent.
type BusNotifier struct {
	bus      *event_bus.EventBus
	clock    utils.Clock
	duration time.Duration
}

func NewBusNotifier(bus *event_bus.EventBus, clock utils.Clock, duration time.Duration) *BusNotifier {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &BusNotifier{bus: bus, clock: clock, duration: duration}
}

func (n *BusNotifier) Notify(ctx context.Context, toast Toast) {
	if toast.Duration == 0 {
		toast.Duration = n.duration
	}
	toast.ShownAt = n.clock.Now()

	err := n.bus.Publish(event_bus.NewEvent(ctx, event_bus.ToastShownEvent, event_bus.ToastShown{
		Title:       toast.Title,
		Description: toast.Description,
		Status:      string(toast.Status),
		Duration:    toast.Duration,
		ShownAt:     toast.ShownAt,
	}))
	if err != nil {
		log.Warnf("Failed to publish toast %q: %v", toast.Title, err)
	}
}

func Success(title string) Toast {
	return Toast{Title: title, Status: StatusSuccess}
}

func Error(title, description string) Toast {
	return Toast{Title: title, Description: description, Status: StatusError}
}
