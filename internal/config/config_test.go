package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileIsMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.Api.BaseUrl)
	assert.Equal(t, time.Duration(0), cfg.Api.Timeout)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 3*time.Second, cfg.Notifications.Duration)
	assert.True(t, cfg.Routes.Detail.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	content := `
api:
  baseurl: http://events.internal:8080
  timeout: 5s
db:
  driver: sqlite
  path: /var/lib/eventdesk/events.db
notifications:
  duration: 1500ms
routes:
  detail:
    enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://events.internal:8080", cfg.Api.BaseUrl)
	assert.Equal(t, 5*time.Second, cfg.Api.Timeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/var/lib/eventdesk/events.db", cfg.Database.Path)
	assert.Equal(t, 1500*time.Millisecond, cfg.Notifications.Duration)
	assert.False(t, cfg.Routes.Detail.Enabled)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  baseurl: http://from-file\n"), 0o600))
	t.Setenv("EVENTDESK_API_BASEURL", "http://from-env:3000")
	t.Setenv("EVENTDESK_SERVER_ADDR", ":9090")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://from-env:3000", cfg.Api.BaseUrl)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}
