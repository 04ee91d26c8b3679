package domain

import (
	"context"
	"fmt"
	"time"
)

// EventType describes what kind of gathering an event is. It carries no
// behavior beyond labels and icons.
type EventType string

const (
	EventTypeBirthday EventType = "birthday"
	EventTypeLunch    EventType = "lunch"
	EventTypeDinner   EventType = "dinner"
	EventTypeBarbecue EventType = "barbecue"
)

// EventTypes lists every event type in display order.
var EventTypes = []EventType{EventTypeBirthday, EventTypeLunch, EventTypeDinner, EventTypeBarbecue}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeBirthday, EventTypeLunch, EventTypeDinner, EventTypeBarbecue:
		return true
	}
	return false
}

// ParseEventType converts s into an EventType.
func ParseEventType(s string) (EventType, error) {
	t := EventType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Event is a family gathering proposed by a creator and hosted by a host.
type Event struct {
	ID          string
	Title       string
	DateTime    time.Time
	Location    string
	Type        EventType
	Description string // Optional
	CreatorID   string
	HostID      string
	Status      EventStatus
	CreatedAt   time.Time
}

// EventDraft holds the user-supplied fields of a new event. The creator is
// always the signed-in user and the initial status is derived by policy.
type EventDraft struct {
	Title       string
	Date        string // "2006-01-02", or a combined "2006-01-02T15:04[:05]" value
	Time        string // "15:04"; empty when Date is combined
	Location    string
	Type        EventType
	Description string
	HostID      string
}

// EventPatch holds an edit to an existing event. Nil fields are left
// untouched. ID and CreatedAt are deliberately absent.
type EventPatch struct {
	Title       *string
	DateTime    *time.Time
	Location    *string
	Type        *EventType
	Description *string
	HostID      *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.DateTime == nil && p.Location == nil &&
		p.Type == nil && p.Description == nil && p.HostID == nil
}

// Apply merges the patch into e field by field.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.DateTime != nil {
		e.DateTime = *p.DateTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.HostID != nil {
		e.HostID = *p.HostID
	}
}

// EventRepository is the policy-free event store. Authorization is the
// caller's job; see EventService for the checked boundary.
type EventRepository interface {
	// Create assigns ID (when empty) and CreatedAt (when zero) and stores the event.
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	// Update merges patch into the stored event and returns the result.
	Update(ctx context.Context, id string, patch EventPatch) (*Event, error)
	SetStatus(ctx context.Context, id string, status EventStatus) (*Event, error)
	// Delete removes the event and its guests. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}
