package domain

import "fmt"

// EventStatus is the approval state of an event.
type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
	EventStatusCanceled EventStatus = "canceled"
)

// EventStatuses lists every event status in display order.
var EventStatuses = []EventStatus{EventStatusPending, EventStatusApproved, EventStatusRejected, EventStatusCanceled}

// eventTransitions is the complete event lifecycle. Rejected and canceled
// are terminal.
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusPending:  {EventStatusApproved, EventStatusRejected},
	EventStatusApproved: {EventStatusCanceled},
	EventStatusRejected: nil,
	EventStatusCanceled: nil,
}

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	_, ok := eventTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s EventStatus) Terminal() bool {
	return s.Valid() && len(eventTransitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle allows s -> next.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseEventStatus converts s into an EventStatus.
func ParseEventStatus(s string) (EventStatus, error) {
	st := EventStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown event status %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// GuestStatus is a guest's RSVP answer.
type GuestStatus string

const (
	GuestStatusPending   GuestStatus = "pending"
	GuestStatusConfirmed GuestStatus = "confirmed"
	GuestStatusDeclined  GuestStatus = "declined"
)

// GuestStatuses lists every guest status in display order.
var GuestStatuses = []GuestStatus{GuestStatusPending, GuestStatusConfirmed, GuestStatusDeclined}

var guestTransitions = map[GuestStatus][]GuestStatus{
	GuestStatusPending:   {GuestStatusConfirmed, GuestStatusDeclined},
	GuestStatusConfirmed: nil,
	GuestStatusDeclined:  nil,
}

// Valid reports whether s is a known guest status.
func (s GuestStatus) Valid() bool {
	_, ok := guestTransitions[s]
	return ok
}

// CanTransitionTo reports whether a guest may answer s -> next on their own.
// Admin overrides bypass this table.
func (s GuestStatus) CanTransitionTo(next GuestStatus) bool {
	for _, allowed := range guestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseGuestStatus converts s into a GuestStatus.
func ParseGuestStatus(s string) (GuestStatus, error) {
	st := GuestStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown guest status %q", ErrInvalidStatus, s)
	}
	return st, nil
}
