package event_bus

import "time"

const (
	ToastShownEvent   EventType = "notification.shown"
	RouteChangedEvent EventType = "route.changed"
)

type ToastShown struct {
	Title       string
	Description string
	// Status is one of success, error or info.
	Status   string
	Duration time.Duration
	ShownAt  time.Time
}

type RouteChanged struct {
	Route  string
	Path   string
	Params map[string]string
}
