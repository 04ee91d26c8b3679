// Package fixtures loads the demo users, events and guests every session
// starts from.
package fixtures

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/family-events/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// DateTimeLayout is the zone-less layout used for event times in fixtures
// and in user input.
const DateTimeLayout = "2006-01-02T15:04:05"

// Set is a parsed fixture file.
type Set struct {
	Users  []domain.User
	Events []domain.Event
	Guests []domain.EventGuest
}

type fileUser struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
	Role  string `yaml:"role"`
}

type fileEvent struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	DateTime    string `yaml:"date_time"`
	Location    string `yaml:"location"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	CreatorID   string `yaml:"creator_id"`
	HostID      string `yaml:"host_id"`
	Status      string `yaml:"status"`
	CreatedAt   string `yaml:"created_at"`
}

type fileGuest struct {
	ID      string `yaml:"id"`
	EventID string `yaml:"event_id"`
	UserID  string `yaml:"user_id"`
	Status  string `yaml:"status"`
}

type file struct {
	Users  []fileUser  `yaml:"users"`
	Events []fileEvent `yaml:"events"`
	Guests []fileGuest `yaml:"guests"`
}

// Default parses the embedded demo data, reading zone-less times in loc.
func Default(loc *time.Location) (*Set, error) {
	return Parse(seedYAML, loc)
}

// Parse decodes a fixture document. Every enum value is validated.
func Parse(data []byte, loc *time.Location) (*Set, error) {
	if loc == nil {
		loc = time.Local
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	set := &Set{}
	for _, u := range f.Users {
		role := domain.Role(u.Role)
		if role != domain.RoleAdmin && role != domain.RoleUser {
			return nil, fmt.Errorf("%w: user %s has unknown role %q", domain.ErrInvalidInput, u.ID, u.Role)
		}
		set.Users = append(set.Users, domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: role})
	}

	for _, e := range f.Events {
		typ, err := domain.ParseEventType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		status, err := domain.ParseEventStatus(e.Status)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.ID, err)
		}
		dateTime, err := time.ParseInLocation(DateTimeLayout, e.DateTime, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: event %s date_time: %v", domain.ErrInvalidInput, e.ID, err)
		}
		createdAt, err := time.ParseInLocation(DateTimeLayout, e.CreatedAt, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: event %s created_at: %v", domain.ErrInvalidInput, e.ID, err)
		}
		set.Events = append(set.Events, domain.Event{
			ID:          e.ID,
			Title:       e.Title,
			DateTime:    dateTime,
			Location:    e.Location,
			Type:        typ,
			Description: e.Description,
			CreatorID:   e.CreatorID,
			HostID:      e.HostID,
			Status:      status,
			CreatedAt:   createdAt,
		})
	}

	for _, g := range f.Guests {
		status, err := domain.ParseGuestStatus(g.Status)
		if err != nil {
			return nil, fmt.Errorf("guest %s: %w", g.ID, err)
		}
		set.Guests = append(set.Guests, domain.EventGuest{ID: g.ID, EventID: g.EventID, UserID: g.UserID, Status: status})
	}

	return set, nil
}

// Apply inserts the set through the repositories. It is idempotent: users
// and events that already exist are skipped.
func (s *Set) Apply(ctx context.Context, users domain.UserRepository, events domain.EventRepository, guests domain.GuestRepository) error {
	for _, u := range s.Users {
		_, err := users.GetByID(ctx, u.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check user %s: %w", u.ID, err)
		}
		if err := users.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, e := range s.Events {
		_, err := events.GetByID(ctx, e.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check event %s: %w", e.ID, err)
		}
		if err := events.Create(ctx, &e); err != nil {
			return fmt.Errorf("seed event %s: %w", e.ID, err)
		}
	}

	// Guest Add already returns the existing record for a repeated invite.
	for _, g := range s.Guests {
		if err := guests.Add(ctx, &g); err != nil {
			return fmt.Errorf("seed guest %s: %w", g.ID, err)
		}
	}
	return nil
}
