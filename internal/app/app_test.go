package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/internal/metrics"
	"github.com/eventdesk/eventdesk/internal/router"
	"github.com/eventdesk/eventdesk/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cfg     config.Application
	backend *ServerDependencies
}

func setupTestEnv(t *testing.T) *testEnv {
	cfg := config.Defaults()
	cfg.Database.Driver = "memory"

	deps, err := BuildServerDependencies(cfg)
	require.NoError(t, err)
	server := httptest.NewServer(NewServer(cfg, deps).Handler)
	t.Cleanup(server.Close)

	cfg.Api.BaseUrl = server.URL
	return &testEnv{cfg: cfg, backend: deps}
}

func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	application := New(e.cfg, strings.NewReader(stdin), &out, &errOut)
	err := application.Execute(context.Background(), args...)
	return out.String(), errOut.String(), err
}

func (e *testEnv) storedEvents(t *testing.T) []event.Event {
	events, err := e.backend.EventService.ListEvents(context.Background())
	require.NoError(t, err)
	return events
}

func (e *testEnv) seed(t *testing.T) {
	_, _, err := e.run(t, "", "create", "--title", "Jazz Night", "--description", "Live quartet",
		"--category", "music", "--start", "2025-05-01T20:00", "--end", "2025-05-01T23:00")
	require.NoError(t, err)
	_, _, err = e.run(t, "", "create", "--title", "Pottery workshop", "--description", "Hands-on clay session",
		"--category", "workshop")
	require.NoError(t, err)
	_, _, err = e.run(t, "", "create", "--title", "Open air cinema", "--description", "Classic MUSICALS",
		"--category", "film")
	require.NoError(t, err)
}

func TestCreateCommand(t *testing.T) {
	t.Run("should create the event and print the refreshed list", func(t *testing.T) {
		env := setupTestEnv(t)

		out, _, err := env.run(t, "", "create", "--title", "Jazz Night", "--category", "music",
			"--start", "2025-05-01T20:00")

		require.NoError(t, err)
		assert.Contains(t, out, "Jazz Night")
		assert.Contains(t, out, "2025-05-01T20:00")
		assert.NotContains(t, out, "2025-05-01T20:00:00Z")
		events := env.storedEvents(t)
		require.Len(t, events, 1)
		assert.Equal(t, "music", events[0].Category)
	})

	t.Run("should require a title", func(t *testing.T) {
		env := setupTestEnv(t)

		_, _, err := env.run(t, "", "create", "--category", "music")

		assert.Error(t, err)
		assert.Empty(t, env.storedEvents(t))
	})

	t.Run("should reject an unparseable start time", func(t *testing.T) {
		env := setupTestEnv(t)

		_, _, err := env.run(t, "", "create", "--title", "Quiz", "--start", "tomorrow")

		assert.Error(t, err)
		assert.Empty(t, env.storedEvents(t))
	})
}

func TestListCommand(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)

	t.Run("should print every event", func(t *testing.T) {
		out, _, err := env.run(t, "", "list")

		require.NoError(t, err)
		assert.Contains(t, out, "Jazz Night")
		assert.Contains(t, out, "Pottery workshop")
		assert.Contains(t, out, "Open air cinema")
	})

	t.Run("should search across fields ignoring case", func(t *testing.T) {
		out, _, err := env.run(t, "", "list", "--search", "music")

		require.NoError(t, err)
		assert.Contains(t, out, "Jazz Night")
		assert.Contains(t, out, "Open air cinema")
		assert.NotContains(t, out, "Pottery workshop")
	})

	t.Run("should let the category filter replace the search", func(t *testing.T) {
		out, _, err := env.run(t, "", "list", "--search", "pottery", "--category", "music")

		require.NoError(t, err)
		assert.Contains(t, out, "Jazz Night")
		assert.NotContains(t, out, "Pottery workshop")
	})

	t.Run("should print an empty list when nothing matches", func(t *testing.T) {
		out, _, err := env.run(t, "", "list", "--category", "Music")

		require.NoError(t, err)
		assert.Contains(t, out, "No events")
	})

	t.Run("should list the categories in first-seen order", func(t *testing.T) {
		out, _, err := env.run(t, "", "categories")

		require.NoError(t, err)
		assert.Equal(t, "music\nworkshop\nfilm\n", out)
	})
}

func TestListCommand_BackendDown(t *testing.T) {
	env := setupTestEnv(t)
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	env.cfg.Api.BaseUrl = down.URL

	out, _, err := env.run(t, "", "list")

	assert.ErrorIs(t, err, event.ErrFetch)
	assert.Contains(t, out, "No events")
}

func TestShowAndEditCommands(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)
	jazz := env.storedEvents(t)[0]

	t.Run("should show the event", func(t *testing.T) {
		out, _, err := env.run(t, "", "show", jazz.Id)

		require.NoError(t, err)
		assert.Contains(t, out, "Jazz Night")
		assert.Contains(t, out, "Live quartet")
		assert.Contains(t, out, "music")
	})

	t.Run("should save only the changed fields and toast", func(t *testing.T) {
		out, errOut, err := env.run(t, "", "edit", jazz.Id, "--title", "Jazz Night (sold out)")

		require.NoError(t, err)
		assert.Contains(t, out, "Jazz Night (sold out)")
		assert.Equal(t, "[success] Edits saved\n", errOut)
		stored := env.storedEvents(t)[0]
		assert.Equal(t, "Jazz Night (sold out)", stored.Title)
		assert.Equal(t, "Live quartet", stored.Description)
		assert.Equal(t, "music", stored.Category)
		assert.True(t, jazz.StartTime.Equal(stored.StartTime))
	})

	t.Run("should leave the record unchanged when saving without edits", func(t *testing.T) {
		before := env.storedEvents(t)[0]

		_, _, err := env.run(t, "", "edit", jazz.Id)

		require.NoError(t, err)
		assert.True(t, before.Equal(env.storedEvents(t)[0]))
	})

	t.Run("should fail for an unknown id", func(t *testing.T) {
		_, _, err := env.run(t, "", "show", "missing")

		assert.ErrorIs(t, err, event.ErrFetch)
	})
}

func TestShowCommand_DetailRouteDisabled(t *testing.T) {
	env := setupTestEnv(t)
	env.seed(t)
	env.cfg.Routes.Detail.Enabled = false

	_, _, err := env.run(t, "", "show", env.storedEvents(t)[0].Id)

	assert.ErrorIs(t, err, router.ErrRouteNotFound)
}

func TestDeleteCommand(t *testing.T) {
	t.Run("should keep the event when not confirmed", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seed(t)
		id := env.storedEvents(t)[0].Id

		out, errOut, err := env.run(t, "n\n", "delete", id)

		require.NoError(t, err)
		assert.Contains(t, out, `Delete event "Jazz Night"?`)
		assert.Contains(t, out, "Canceled")
		assert.Empty(t, errOut)
		assert.Len(t, env.storedEvents(t), 3)
	})

	t.Run("should delete, toast and show the list", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seed(t)
		id := env.storedEvents(t)[0].Id

		out, errOut, err := env.run(t, "y\n", "delete", id)

		require.NoError(t, err)
		assert.Equal(t, "[success] Event deleted\n", errOut)
		prompt := `Delete event "Jazz Night"? [y/N] `
		require.True(t, strings.HasPrefix(out, prompt))
		list := strings.TrimPrefix(out, prompt)
		assert.NotContains(t, list, "Jazz Night")
		assert.Contains(t, list, "Pottery workshop")
		assert.Len(t, env.storedEvents(t), 2)

		_, _, err = env.run(t, "", "show", id)
		assert.ErrorIs(t, err, event.ErrFetch)
	})

	t.Run("should not ask with --yes", func(t *testing.T) {
		env := setupTestEnv(t)
		env.seed(t)
		id := env.storedEvents(t)[0].Id

		out, _, err := env.run(t, "", "delete", "--yes", id)

		require.NoError(t, err)
		assert.NotContains(t, out, "Delete event")
		assert.Len(t, env.storedEvents(t), 2)
	})
}

func TestMigrateCommand_MemoryDriver(t *testing.T) {
	env := setupTestEnv(t)

	_, _, err := env.run(t, "", "migrate")

	assert.ErrorIs(t, err, ErrNothingToMigrate)
}

func TestServer_Metrics(t *testing.T) {
	env := setupTestEnv(t)
	before, err := metrics.ServerRequestCount("GET", "/events", "200")
	require.NoError(t, err)

	_, _, err = env.run(t, "", "list")
	require.NoError(t, err)

	after, err := metrics.ServerRequestCount("GET", "/events", "200")
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	resp, err := http.Get(env.cfg.Api.BaseUrl + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "eventdesk_server_requests_total")
	assert.Contains(t, string(body), "eventdesk_api_requests_total")
}

func TestMigrateCommand_SQLite(t *testing.T) {
	env := setupTestEnv(t)
	env.cfg.Database.Driver = "sqlite"
	env.cfg.Database.Path = filepath.Join(t.TempDir(), "eventdesk.db")

	out, _, err := env.run(t, "", "migrate")

	require.NoError(t, err)
	assert.Contains(t, out, "Migrations applied")
}

func TestBuildServerDependencies_SQLite(t *testing.T) {
	cfg := config.Defaults()
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = ":memory:"

	deps, err := BuildServerDependencies(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { deps.Close() })

	created, err := deps.EventService.CreateEvent(context.Background(), event.Event{Title: "Stored in sqlite"})
	require.NoError(t, err)
	stored, err := deps.EventRepo.GetEvent(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Stored in sqlite", stored.Title)
}
