package app

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"

	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/internal/database"
	"github.com/eventdesk/eventdesk/internal/event_bus"
	"github.com/eventdesk/eventdesk/internal/router"
	"github.com/eventdesk/eventdesk/internal/utils"
	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/eventdesk/eventdesk/pkg/event_store"
	"github.com/eventdesk/eventdesk/pkg/notification"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds everything the client-side commands need.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Notifier notification.Notifier
	Router   *router.Router
	Client   event.Client
}

// BuildDependencies wires the API client, router and notifications. Toasts are
// printed to toastOut.
func BuildDependencies(cfg config.Application, toastOut io.Writer) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.Notifier = notification.NewBusNotifier(deps.EventBus, deps.Clock, cfg.Notifications.Duration)
	deps.Router = router.New(deps.EventBus, cfg.Routes.Detail.Enabled)
	deps.Client = event.NewClient(cfg.Api.BaseUrl, &http.Client{Timeout: cfg.Api.Timeout})

	event_bus.SubscribeTyped(deps.EventBus, event_bus.ToastShownEvent, func(e event_bus.EventT[event_bus.ToastShown]) error {
		return printToast(toastOut, e.Data)
	})
	event_bus.SubscribeTyped(deps.EventBus, event_bus.RouteChangedEvent, func(e event_bus.EventT[event_bus.RouteChanged]) error {
		log.Debugf("Route changed to %s (%s)", e.Data.Path, e.Data.Route)
		return nil
	})

	return deps
}

// ServerDependencies holds the reference backend.
type ServerDependencies struct {
	EventRepo    event_store.Repository
	EventService *event_store.Service
	EventHandler *event_store.Handler

	db *sql.DB
}

// BuildServerDependencies opens the storage selected by cfg.Database.Driver,
// applying migrations for the SQL drivers.
func BuildServerDependencies(cfg config.Application) (*ServerDependencies, error) {
	deps := &ServerDependencies{}

	if cfg.Database.Driver == database.DriverMemory {
		deps.EventRepo = event_store.NewMemoryRepository()
	} else {
		db, dialect, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(cfg.Database, db); err != nil {
			db.Close()
			return nil, err
		}
		deps.db = db
		deps.EventRepo = event_store.NewRepository(db, dialect)
	}
	log.Infof("Using %s event storage", cfg.Database.Driver)

	deps.EventService = event_store.NewService(deps.EventRepo)
	deps.EventHandler = event_store.NewHandler(deps.EventService)

	return deps, nil
}

func (d *ServerDependencies) Close() error {
	if d.db == nil {
		return nil
	}
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
