package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eventdesk/eventdesk/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Dialect tells repositories how to write bind parameters.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Rebind rewrites ? placeholders into $1, $2, ... for Postgres.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Open opens the SQL database selected by cfg.Driver.
func Open(cfg config.Database) (*sql.DB, Dialect, error) {
	switch cfg.Driver {
	case DriverSQLite:
		db, err := sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// An in-memory database lives and dies with its connection.
		db.SetMaxOpenConns(1)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("failed to connect to sqlite database: %w", err)
		}
		return db, SQLite, nil
	case DriverPostgres:
		// Escape single quotes in password for PostgreSQL connection string
		escapedPassword := strings.ReplaceAll(cfg.Pass, "'", "\\'")
		psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password='%s' dbname=%s sslmode=disable search_path=%s",
			cfg.Host, cfg.Port, cfg.User, escapedPassword, cfg.Name, cfg.Schema)

		db, err := sql.Open("pgx", psqlInfo)
		if err != nil {
			return nil, "", fmt.Errorf("failed to parse database config: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, "", fmt.Errorf("failed to connect to database: %w", err)
		}
		return db, Postgres, nil
	}
	return nil, "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Migrate applies the migrations directory to db.
func Migrate(cfg config.Database, db *sql.DB) error {
	migrationsPath, err := findMigrationsPath()
	if err != nil {
		return fmt.Errorf("failed to locate migrations directory: %w", err)
	}
	sourceURL := "file://" + migrationsPath

	var m *migrate.Migrate
	switch cfg.Driver {
	case DriverSQLite:
		driver, err := sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to create sqlite driver: %w", err)
		}
		m, err = migrate.NewWithDatabaseInstance(sourceURL, "sqlite", driver)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
	case DriverPostgres:
		escapedPassword := url.QueryEscape(cfg.Pass)
		dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s",
			cfg.User, escapedPassword, cfg.Host, cfg.Port, cfg.Name, cfg.Schema)
		m, err = migrate.New(sourceURL, dbUrl)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
		defer m.Close()
	default:
		return fmt.Errorf("migrations are not supported for driver %q", cfg.Driver)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	log.Debugf("Migrations applied from %s", migrationsPath)
	return nil
}

// findMigrationsPath searches upward from the current working directory for a "migrations" directory
// and returns its absolute path.
func findMigrationsPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "migrations")
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", err
			}
			return abs, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("migrations directory not found")
}
