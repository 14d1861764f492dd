package event_store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eventdesk/eventdesk/internal/metrics"
	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrTitleRequired = errors.New("title is required")

type Service struct {
	repo  Repository
	newId func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newId: uuid.NewString,
	}
}

func (s *Service) ListEvents(ctx context.Context) ([]event.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *Service) GetEvent(ctx context.Context, id string) (event.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// CreateEvent stores e under a newly assigned id. Any id sent by the client is ignored.
func (s *Service) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	if strings.TrimSpace(e.Title) == "" {
		return event.Event{}, ErrTitleRequired
	}
	e.Id = s.newId()
	if err := s.repo.StoreEvent(ctx, e); err != nil {
		return event.Event{}, fmt.Errorf("failed to store event: %w", err)
	}
	log.Debugf("Event %s created", e.Id)
	s.refreshGauge(ctx)
	return e, nil
}

// UpdateEvent replaces the whole record stored under id.
func (s *Service) UpdateEvent(ctx context.Context, id string, e event.Event) (event.Event, error) {
	if strings.TrimSpace(e.Title) == "" {
		return event.Event{}, ErrTitleRequired
	}
	e.Id = id
	if err := s.repo.UpdateEvent(ctx, e); err != nil {
		return event.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	return e, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	log.Debugf("Event %s deleted", id)
	s.refreshGauge(ctx)
	return nil
}

func (s *Service) refreshGauge(ctx context.Context) {
	count, err := s.repo.CountEvents(ctx)
	if err != nil {
		log.Warnf("failed to count events: %v", err)
		return
	}
	metrics.SetStoredEvents(count)
}
