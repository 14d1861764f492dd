package test_utils

import (
	"database/sql"
	"testing"

	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/eventdesk/eventdesk/internal/database"
)

// SetupTestDB opens an isolated in-memory SQLite database with all migrations
// applied. It is closed when the test finishes.
func SetupTestDB(t *testing.T) (*sql.DB, database.Dialect) {
	t.Helper()

	cfg := config.Database{Driver: database.DriverSQLite, Path: ":memory:"}
	db, dialect, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(cfg, db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	return db, dialect
}
