package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/eventdesk/eventdesk/internal/event_bus"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	EventsRoute = "events"
	EventRoute  = "event"

	EventsPath = "/"
)

var ErrRouteNotFound = errors.New("route not found")

// Location is a resolved path: which route it belongs to and its path parameters.
type Location struct {
	Route  string
	Path   string
	Params map[string]string
}

func (l Location) Param(name string) string {
	return l.Params[name]
}

type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// Router maps client-side paths to views. It never serves HTTP; mux is only
// used to match paths and to build them.
type Router struct {
	routes *mux.Router
	bus    *event_bus.EventBus

	mu      sync.RWMutex
	current Location
}

// New builds the route table. The detail route is only registered when
// detailEnabled is set.
func New(bus *event_bus.EventBus, detailEnabled bool) *Router {
	routes := mux.NewRouter().UseEncodedPath()
	routes.NewRoute().Name(EventsRoute).Path(EventsPath)
	if detailEnabled {
		routes.NewRoute().Name(EventRoute).Path("/events/{eventId}")
	}
	return &Router{routes: routes, bus: bus}
}

// Resolve matches path, which is URL-escaped, against the route table.
// Path parameters are returned unescaped.
func (r *Router) Resolve(path string) (Location, error) {
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return Location{}, fmt.Errorf("invalid path %q: %w", path, err)
	}

	var match mux.RouteMatch
	if !r.routes.Match(req, &match) || match.Route == nil {
		return Location{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	params := make(map[string]string, len(match.Vars))
	for k, v := range match.Vars {
		value, err := url.PathUnescape(v)
		if err != nil {
			return Location{}, fmt.Errorf("invalid path %q: %w", path, err)
		}
		params[k] = value
	}
	return Location{
		Route:  match.Route.GetName(),
		Path:   req.URL.EscapedPath(),
		Params: params,
	}, nil
}

// Navigate resolves path, makes it the current location and announces it on the bus.
func (r *Router) Navigate(ctx context.Context, path string) error {
	location, err := r.Resolve(path)
	if err != nil {
		log.Debugf("Navigation to %s failed: %v", path, err)
		return err
	}

	r.mu.Lock()
	r.current = location
	r.mu.Unlock()
	log.Debugf("Navigated to %s (%s)", location.Path, location.Route)

	if r.bus == nil {
		return nil
	}
	return r.bus.Publish(event_bus.NewEvent(ctx, event_bus.RouteChangedEvent, event_bus.RouteChanged{
		Route:  location.Route,
		Path:   location.Path,
		Params: location.Params,
	}))
}

func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// EventPath builds the detail path for id, escaping it as one path segment.
func (r *Router) EventPath(id string) (string, error) {
	route := r.routes.Get(EventRoute)
	if route == nil {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, EventRoute)
	}
	u, err := route.URLPath("eventId", url.PathEscape(id))
	if err != nil {
		return "", err
	}
	return u.Path, nil
}
