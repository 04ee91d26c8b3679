package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/msomdec/family-events/internal/domain"
)

type guestRepo struct {
	db *sql.DB
}

func (r *guestRepo) Add(ctx context.Context, guest *domain.EventGuest) error {
	existing, err := r.GetByEventAndUser(ctx, guest.EventID, guest.UserID)
	if err == nil {
		*guest = *existing
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if guest.ID == "" {
		guest.ID = uuid.NewString()
	}
	if guest.Status == "" {
		guest.Status = domain.GuestStatusPending
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_guests (id, event_id, user_id, status) VALUES (?, ?, ?, ?)`,
		guest.ID, guest.EventID, guest.UserID, string(guest.Status),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("event %s: %w", guest.EventID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert guest: %w", err)
	}
	return nil
}

func (r *guestRepo) GetByID(ctx context.Context, id string) (*domain.EventGuest, error) {
	g := &domain.EventGuest{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, user_id, status FROM event_guests WHERE id = ?`, id,
	).Scan(&g.ID, &g.EventID, &g.UserID, &g.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest: %w", err)
	}
	return g, nil
}

func (r *guestRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventGuest, error) {
	g := &domain.EventGuest{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, event_id, user_id, status FROM event_guests WHERE event_id = ? AND user_id = ?`,
		eventID, userID,
	).Scan(&g.ID, &g.EventID, &g.UserID, &g.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest by event and user: %w", err)
	}
	return g, nil
}

func (r *guestRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.EventGuest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_id, user_id, status FROM event_guests WHERE event_id = ? ORDER BY rowid`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var guests []domain.EventGuest
	for rows.Next() {
		var g domain.EventGuest
		if err := rows.Scan(&g.ID, &g.EventID, &g.UserID, &g.Status); err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *guestRepo) SetStatus(ctx context.Context, id string, status domain.GuestStatus) (*domain.EventGuest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	result, err := r.db.ExecContext(ctx, `UPDATE event_guests SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("update guest status: %w", err)
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

func (r *guestRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM event_guests WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	return nil
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
