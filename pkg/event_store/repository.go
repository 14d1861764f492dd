package event_store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eventdesk/eventdesk/internal/database"
	"github.com/eventdesk/eventdesk/pkg/event"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	GetEvent(ctx context.Context, id string) (event.Event, error)
	StoreEvent(ctx context.Context, e event.Event) error
	UpdateEvent(ctx context.Context, e event.Event) error
	DeleteEvent(ctx context.Context, id string) error
	CountEvents(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewRepository(db *sql.DB, dialect database.Dialect) *RepositoryImpl {
	return &RepositoryImpl{db: db, dialect: dialect}
}

const selectColumns = `id, title, description, start_time, end_time, category, image, categories, creator_name, creator_image, extra`

func (r *RepositoryImpl) ListEvents(ctx context.Context) ([]event.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM events ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to list events: %v", err)
		return nil, err
	}
	defer rows.Close()

	events := make([]event.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			log.Errorf("failed to scan event: %v", err)
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) GetEvent(ctx context.Context, id string) (event.Event, error) {
	query := r.dialect.Rebind(`SELECT ` + selectColumns + ` FROM events WHERE id = ?`)
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return event.Event{}, ErrEventNotFound
		}
		log.Errorf("failed to get event %s: %v", id, err)
		return event.Event{}, err
	}
	return e, nil
}

// StoreEvent inserts e after every existing event. e.Id must already be set.
func (r *RepositoryImpl) StoreEvent(ctx context.Context, e event.Event) error {
	query := r.dialect.Rebind(`INSERT INTO events (
                    id,
                    position,
                    title,
                    description,
                    start_time,
                    end_time,
                    category,
                    image,
                    categories,
                    creator_name,
                    creator_image,
                    extra
				) VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM events), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	args, err := eventArgs(e)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, append([]any{e.Id}, args...)...)
	if err != nil {
		log.Errorf("failed to store event: %v", err)
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, e event.Event) error {
	query := r.dialect.Rebind(`UPDATE events SET
                    title = ?,
                    description = ?,
                    start_time = ?,
                    end_time = ?,
                    category = ?,
                    image = ?,
                    categories = ?,
                    creator_name = ?,
                    creator_image = ?,
                    extra = ?
				WHERE id = ?`)

	args, err := eventArgs(e)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, query, append(args, e.Id)...)
	if err != nil {
		log.Errorf("failed to update event %s: %v", e.Id, err)
		return fmt.Errorf("failed to update event: %w", err)
	}
	return expectOneRow(result)
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, id string) error {
	query := r.dialect.Rebind(`DELETE FROM events WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Errorf("failed to delete event %s: %v", id, err)
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return expectOneRow(result)
}

func (r *RepositoryImpl) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func expectOneRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// eventArgs are the bind values for every column except id and position, in column order.
func eventArgs(e event.Event) ([]any, error) {
	categories := e.Categories
	if categories == nil {
		categories = []string{}
	}
	categoriesJson, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}

	extra := e.Extra()
	if extra == nil {
		extra = map[string]json.RawMessage{}
	}
	extraJson, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extra fields: %w", err)
	}

	var creatorName, creatorImage sql.NullString
	if e.Creator != nil {
		creatorName = sql.NullString{String: e.Creator.Name, Valid: true}
		creatorImage = sql.NullString{String: e.Creator.Image, Valid: true}
	}

	return []any{
		e.Title,
		e.Description,
		e.StartTime.String(),
		e.EndTime.String(),
		e.Category,
		e.Image,
		string(categoriesJson),
		creatorName,
		creatorImage,
		string(extraJson),
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (event.Event, error) {
	var (
		e              event.Event
		startTime      string
		endTime        string
		categoriesJson string
		creatorName    sql.NullString
		creatorImage   sql.NullString
		extraJson      string
	)
	err := row.Scan(&e.Id, &e.Title, &e.Description, &startTime, &endTime, &e.Category, &e.Image,
		&categoriesJson, &creatorName, &creatorImage, &extraJson)
	if err != nil {
		return event.Event{}, err
	}

	e.StartTime = event.DateTimeFromText(startTime)
	e.EndTime = event.DateTimeFromText(endTime)
	if err := json.Unmarshal([]byte(categoriesJson), &e.Categories); err != nil {
		return event.Event{}, fmt.Errorf("failed to decode categories: %w", err)
	}
	if len(e.Categories) == 0 {
		e.Categories = nil
	}
	if creatorName.Valid {
		e.Creator = &event.Creator{Name: creatorName.String, Image: creatorImage.String}
	}
	var extra map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extraJson), &extra); err != nil {
		return event.Event{}, fmt.Errorf("failed to decode extra fields: %w", err)
	}
	e.SetExtra(extra)
	return e, nil
}
