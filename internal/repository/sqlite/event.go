package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/family-events/internal/domain"
)

// Times are stored as text so the wall clock and offset of DateTime survive
// a round trip unchanged.
const timeLayout = time.RFC3339Nano

const eventColumns = `id, title, date_time, location, type, description, creator_id, host_id, status, created_at`

type eventRepo struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var (
		e                   domain.Event
		dateTime, createdAt string
	)
	if err := row.Scan(&e.ID, &e.Title, &dateTime, &e.Location, &e.Type, &e.Description,
		&e.CreatorID, &e.HostID, &e.Status, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if e.DateTime, err = time.Parse(timeLayout, dateTime); err != nil {
		return nil, fmt.Errorf("parse date_time of event %s: %w", e.ID, err)
	}
	if e.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at of event %s: %w", e.ID, err)
	}
	return &e, nil
}

func (r *eventRepo) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.DateTime.Format(timeLayout), event.Location, string(event.Type),
		event.Description, event.CreatorID, event.HostID, string(event.Status),
		event.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (r *eventRepo) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date_time, id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return e, nil
	}

	patch.Apply(e)
	_, err = r.db.ExecContext(ctx,
		`UPDATE events SET title = ?, date_time = ?, location = ?, type = ?, description = ?, host_id = ?
		 WHERE id = ?`,
		e.Title, e.DateTime.Format(timeLayout), e.Location, string(e.Type), e.Description, e.HostID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

func (r *eventRepo) SetStatus(ctx context.Context, id string, status domain.EventStatus) (*domain.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	result, err := r.db.ExecContext(ctx, `UPDATE events SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("update event status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete relies on ON DELETE CASCADE to remove the event's guests.
func (r *eventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
