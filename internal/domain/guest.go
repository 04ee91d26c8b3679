package domain

import "context"

// EventGuest is one user's invitation to one event.
type EventGuest struct {
	ID      string
	EventID string
	UserID  string
	Status  GuestStatus
}

// GuestRepository is the policy-free guest store.
type GuestRepository interface {
	// Add stores a new guest. A second invite of the same user to the same
	// event returns the existing record instead of a duplicate.
	Add(ctx context.Context, guest *EventGuest) error
	GetByID(ctx context.Context, id string) (*EventGuest, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*EventGuest, error)
	ListByEvent(ctx context.Context, eventID string) ([]EventGuest, error)
	SetStatus(ctx context.Context, id string, status GuestStatus) (*EventGuest, error)
	// Delete removes a guest. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
}
