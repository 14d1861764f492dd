package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eventdesk/eventdesk/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// Operation names, used as metrics labels.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

type Client interface {
	ListEvents(ctx context.Context) ([]Event, error)               // GET /events
	GetEvent(ctx context.Context, id string) (Event, error)        // GET /events/{id}
	CreateEvent(ctx context.Context, draft Event) error            // POST /events
	UpdateEvent(ctx context.Context, id string, draft Event) error // PUT /events/{id}
	DeleteEvent(ctx context.Context, id string) error              // DELETE /events/{id}
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *ClientImpl {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *ClientImpl) eventsURL() string {
	return c.baseURL + "/events"
}

func (c *ClientImpl) eventURL(id string) string {
	return c.eventsURL() + "/" + url.PathEscape(id)
}

// ListEvents returns the whole collection in the order the backend sends it.
func (c *ClientImpl) ListEvents(ctx context.Context) (events []Event, err error) {
	defer observe(OpList, time.Now(), &err)
	log.Trace("Fetching events")

	resp, err := c.do(ctx, OpList, http.MethodGet, c.eventsURL(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		log.Errorf("Failed to decode events: %v", err)
		return nil, &FetchError{Operation: OpList, Err: err}
	}
	if events == nil {
		events = []Event{}
	}

	log.Tracef("Events fetched: %d", len(events))
	return events, nil
}

func (c *ClientImpl) GetEvent(ctx context.Context, id string) (event Event, err error) {
	defer observe(OpGet, time.Now(), &err)

	resp, err := c.do(ctx, OpGet, http.MethodGet, c.eventURL(id), nil)
	if err != nil {
		return Event{}, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		log.Errorf("Failed to decode event %s: %v", id, err)
		return Event{}, &FetchError{Operation: OpGet, Err: err}
	}
	return event, nil
}

// CreateEvent posts the draft. The response body is ignored; callers refetch the list.
func (c *ClientImpl) CreateEvent(ctx context.Context, draft Event) (err error) {
	defer observe(OpCreate, time.Now(), &err)

	draft.Id = ""
	resp, err := c.do(ctx, OpCreate, http.MethodPost, c.eventsURL(), draft)
	if err != nil {
		return err
	}
	return drain(resp)
}

// UpdateEvent replaces the whole record with draft.
func (c *ClientImpl) UpdateEvent(ctx context.Context, id string, draft Event) (err error) {
	defer observe(OpUpdate, time.Now(), &err)

	resp, err := c.do(ctx, OpUpdate, http.MethodPut, c.eventURL(id), draft)
	if err != nil {
		return err
	}
	return drain(resp)
}

func (c *ClientImpl) DeleteEvent(ctx context.Context, id string) (err error) {
	defer observe(OpDelete, time.Now(), &err)

	resp, err := c.do(ctx, OpDelete, http.MethodDelete, c.eventURL(id), nil)
	if err != nil {
		return err
	}
	return drain(resp)
}

// do sends one request and turns every failure, including a non-2xx status, into a FetchError.
// On success the caller owns the response body.
func (c *ClientImpl) do(ctx context.Context, operation, method, target string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			log.Errorf("Failed to encode request body: %v", err)
			return nil, &FetchError{Operation: operation, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, &FetchError{Operation: operation, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, &FetchError{Operation: operation, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		err := &FetchError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s %s returned %s", method, target, resp.Status),
		}
		log.Error(err)
		return nil, err
	}

	return resp, nil
}

func drain(resp *http.Response) error {
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func observe(operation string, started time.Time, err *error) {
	metrics.ObserveApiRequest(operation, started, *err)
}
