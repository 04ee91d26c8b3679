package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/msomdec/family-events/internal/domain"
)

// Action names used for metrics and logs.
const (
	ActionCreate       = "create"
	ActionUpdate       = "update"
	ActionApprove      = "approve"
	ActionReject       = "reject"
	ActionCancel       = "cancel"
	ActionDelete       = "delete"
	ActionAddGuest     = "add_guest"
	ActionRespondGuest = "respond_guest"
	ActionRemoveGuest  = "remove_guest"
)

// Options carries the optional collaborators of EventService.
type Options struct {
	Notifier Notifier
	Metrics  *Metrics
	// Location interprets zone-less dates in drafts. Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// EventService is the checked boundary over the event and guest stores.
// Every mutation takes the acting user from the session and re-validates
// the authorization policy and the lifecycle before touching the store.
type EventService struct {
	events  domain.EventRepository
	guests  domain.GuestRepository
	users   domain.UserRepository
	session *Session

	notifier Notifier
	metrics  *Metrics
	loc      *time.Location
	now      func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(events domain.EventRepository, guests domain.GuestRepository, users domain.UserRepository, session *Session, opts Options) *EventService {
	s := &EventService{
		events:   events,
		guests:   guests,
		users:    users,
		session:  session,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		loc:      opts.Location,
		now:      opts.Now,
	}
	if s.notifier == nil {
		s.notifier = discard{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Location is where zone-less dates of drafts are interpreted.
func (s *EventService) Location() *time.Location {
	return s.loc
}

// Create stores a new event created by the signed-in user. Self-hosted
// events start approved, every other event starts pending.
func (s *EventService) Create(ctx context.Context, draft domain.EventDraft) (*domain.Event, error) {
	user, err := s.actor()
	if err != nil {
		return nil, s.fail(ctx, ActionCreate, err)
	}

	event, err := s.fromDraft(ctx, draft)
	if err != nil {
		return nil, s.fail(ctx, ActionCreate, err)
	}
	event.CreatorID = user.ID
	event.Status = domain.InitialStatus(user.ID, event.HostID)

	if err := s.events.Create(ctx, event); err != nil {
		return nil, s.fail(ctx, ActionCreate, fmt.Errorf("create event: %w", err))
	}

	s.succeed(ctx, ActionCreate, info("Evento criado", "O evento foi criado com sucesso."))
	slog.Info("event created", "event_id", event.ID, "user_id", user.ID, "host_id", event.HostID, "status", event.Status)
	return event, nil
}

// Update applies an edit. Admins, the creator and the host may edit.
func (s *EventService) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	user, err := s.actor()
	if err != nil {
		return nil, s.fail(ctx, ActionUpdate, err)
	}

	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, ActionUpdate, err)
	}
	if !domain.CanEdit(user, existing) {
		return nil, s.fail(ctx, ActionUpdate, fmt.Errorf("%w: only an admin, the creator or the host may edit", domain.ErrUnauthorized))
	}
	if err := s.validatePatch(ctx, patch); err != nil {
		return nil, s.fail(ctx, ActionUpdate, err)
	}

	updated, err := s.events.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(ctx, ActionUpdate, fmt.Errorf("update event: %w", err))
	}

	s.succeed(ctx, ActionUpdate, info("Evento atualizado", "As alterações foram salvas com sucesso."))
	slog.Info("event updated", "event_id", id, "user_id", user.ID)
	return updated, nil
}

// Approve moves a pending event to approved. Only its host may approve.
func (s *EventService) Approve(ctx context.Context, id string) (*domain.Event, error) {
	return s.transition(ctx, ActionApprove, id, domain.EventStatusApproved, domain.CanApprove,
		"only the host may approve a pending event",
		info("Evento aprovado", "O evento foi aprovado com sucesso."))
}

// Reject moves a pending event to rejected. Only its host may reject.
func (s *EventService) Reject(ctx context.Context, id string) (*domain.Event, error) {
	return s.transition(ctx, ActionReject, id, domain.EventStatusRejected, domain.CanReject,
		"only the host may reject a pending event",
		info("Evento rejeitado", "O evento foi rejeitado."))
}

// Cancel moves an approved event to canceled. The creator or an admin may cancel.
func (s *EventService) Cancel(ctx context.Context, id string) (*domain.Event, error) {
	return s.transition(ctx, ActionCancel, id, domain.EventStatusCanceled, domain.CanCancel,
		"only the creator or an admin may cancel an approved event",
		info("Evento cancelado", "O evento foi cancelado com sucesso."))
}

func (s *EventService) transition(ctx context.Context, action, id string, target domain.EventStatus,
	allowed func(*domain.User, *domain.Event) bool, denied string, ok Notice) (*domain.Event, error) {
	user, err := s.actor()
	if err != nil {
		return nil, s.fail(ctx, action, err)
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, action, err)
	}
	if !allowed(user, event) {
		return nil, s.fail(ctx, action, fmt.Errorf("%w: %s", domain.ErrUnauthorized, denied))
	}
	if !event.Status.CanTransitionTo(target) {
		return nil, s.fail(ctx, action, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, event.Status, target))
	}

	updated, err := s.events.SetStatus(ctx, id, target)
	if err != nil {
		return nil, s.fail(ctx, action, fmt.Errorf("set status: %w", err))
	}

	s.succeed(ctx, action, ok)
	slog.Info("event status changed", "event_id", id, "user_id", user.ID, "from", event.Status, "to", target)
	return updated, nil
}

// Delete removes an event and its guests. Deleting an id that does not
// exist is a no-op.
func (s *EventService) Delete(ctx context.Context, id string) error {
	user, err := s.actor()
	if err != nil {
		return s.fail(ctx, ActionDelete, err)
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Debug("delete of missing event ignored", "event_id", id)
			return nil
		}
		return s.fail(ctx, ActionDelete, err)
	}
	if !domain.CanDelete(user, event) {
		return s.fail(ctx, ActionDelete, fmt.Errorf("%w: an approved event must be canceled by its creator or an admin", domain.ErrUnauthorized))
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return s.fail(ctx, ActionDelete, fmt.Errorf("delete event: %w", err))
	}

	s.succeed(ctx, ActionDelete, info("Evento removido", "O evento foi removido permanentemente."))
	slog.Info("event deleted", "event_id", id, "user_id", user.ID)
	return nil
}

// AddGuest invites a user to an event. Inviting someone who is already a
// guest returns the existing invitation.
func (s *EventService) AddGuest(ctx context.Context, eventID, userID string) (*domain.EventGuest, error) {
	user, err := s.actor()
	if err != nil {
		return nil, s.fail(ctx, ActionAddGuest, err)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, s.fail(ctx, ActionAddGuest, err)
	}
	if !domain.CanManageGuests(user, event) {
		return nil, s.fail(ctx, ActionAddGuest, fmt.Errorf("%w: only an admin, the creator or the host may invite", domain.ErrUnauthorized))
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("%w: unknown user %q", domain.ErrInvalidInput, userID)
		}
		return nil, s.fail(ctx, ActionAddGuest, err)
	}

	guest := &domain.EventGuest{EventID: eventID, UserID: userID, Status: domain.GuestStatusPending}
	if err := s.guests.Add(ctx, guest); err != nil {
		return nil, s.fail(ctx, ActionAddGuest, fmt.Errorf("add guest: %w", err))
	}

	s.succeed(ctx, ActionAddGuest, info("Convidado adicionado", "O convidado foi adicionado ao evento."))
	slog.Info("guest added", "event_id", eventID, "guest_id", guest.ID, "user_id", user.ID)
	return guest, nil
}

// RespondGuest records an RSVP. The invited user answers a pending
// invitation; an admin may set any status.
func (s *EventService) RespondGuest(ctx context.Context, guestID string, status domain.GuestStatus) (*domain.EventGuest, error) {
	user, err := s.actor()
	if err != nil {
		return nil, s.fail(ctx, ActionRespondGuest, err)
	}
	if !status.Valid() {
		return nil, s.fail(ctx, ActionRespondGuest, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status))
	}

	guest, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		return nil, s.fail(ctx, ActionRespondGuest, err)
	}
	if !domain.CanRespond(user, guest, status) {
		if user.ID == guest.UserID {
			err = fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, guest.Status, status)
		} else {
			err = fmt.Errorf("%w: only the guest or an admin may answer", domain.ErrUnauthorized)
		}
		return nil, s.fail(ctx, ActionRespondGuest, err)
	}

	updated, err := s.guests.SetStatus(ctx, guestID, status)
	if err != nil {
		return nil, s.fail(ctx, ActionRespondGuest, fmt.Errorf("set guest status: %w", err))
	}

	s.succeed(ctx, ActionRespondGuest, info("Status do convidado atualizado",
		fmt.Sprintf("O status do convidado foi alterado para %s.", strings.ToLower(FormatGuestStatus(status)))))
	slog.Info("guest answered", "guest_id", guestID, "user_id", user.ID, "from", guest.Status, "to", status)
	return updated, nil
}

// RemoveGuest withdraws an invitation. Removing a missing guest is a no-op.
func (s *EventService) RemoveGuest(ctx context.Context, guestID string) error {
	user, err := s.actor()
	if err != nil {
		return s.fail(ctx, ActionRemoveGuest, err)
	}

	guest, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return s.fail(ctx, ActionRemoveGuest, err)
	}
	event, err := s.events.GetByID(ctx, guest.EventID)
	if err != nil {
		return s.fail(ctx, ActionRemoveGuest, err)
	}
	if !domain.CanManageGuests(user, event) {
		return s.fail(ctx, ActionRemoveGuest, fmt.Errorf("%w: only an admin, the creator or the host may remove guests", domain.ErrUnauthorized))
	}

	if err := s.guests.Delete(ctx, guestID); err != nil {
		return s.fail(ctx, ActionRemoveGuest, fmt.Errorf("remove guest: %w", err))
	}

	s.succeed(ctx, ActionRemoveGuest, info("Convidado removido", "O convidado foi removido do evento."))
	slog.Info("guest removed", "guest_id", guestID, "event_id", event.ID, "user_id", user.ID)
	return nil
}

func (s *EventService) actor() (*domain.User, error) {
	u, ok := s.session.User()
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

func (s *EventService) succeed(ctx context.Context, action string, n Notice) {
	s.metrics.mutation(action)
	s.notifier.Notify(ctx, n)
}

// fail reports err to the notifier and metrics and returns it unchanged.
func (s *EventService) fail(ctx context.Context, action string, err error) error {
	s.metrics.failure(action, err)
	s.notifier.Notify(ctx, failureNotice(err))
	slog.Warn("action refused", "action", action, "error", err)
	return err
}

func (s *EventService) fromDraft(ctx context.Context, d domain.EventDraft) (*domain.Event, error) {
	title := strings.TrimSpace(d.Title)
	location := strings.TrimSpace(d.Location)
	if title == "" || location == "" {
		return nil, fmt.Errorf("%w: title and location are required", domain.ErrInvalidInput)
	}
	if !d.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, d.Type)
	}
	if err := s.checkHost(ctx, d.HostID); err != nil {
		return nil, err
	}
	when, err := ParseDateTime(d.Date, d.Time, s.loc)
	if err != nil {
		return nil, err
	}

	return &domain.Event{
		Title:       title,
		DateTime:    when,
		Location:    location,
		Type:        d.Type,
		Description: strings.TrimSpace(d.Description),
		HostID:      d.HostID,
	}, nil
}

func (s *EventService) validatePatch(ctx context.Context, p domain.EventPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return fmt.Errorf("%w: location cannot be empty", domain.ErrInvalidInput)
	}
	if p.Type != nil && !p.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidInput, *p.Type)
	}
	if p.HostID != nil {
		return s.checkHost(ctx, *p.HostID)
	}
	return nil
}

func (s *EventService) checkHost(ctx context.Context, hostID string) error {
	if hostID == "" {
		return fmt.Errorf("%w: host is required", domain.ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, hostID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: unknown host %q", domain.ErrInvalidInput, hostID)
		}
		return fmt.Errorf("get host: %w", err)
	}
	return nil
}

// ParseDateTime combines a form date ("2006-01-02") and time ("15:04") in
// loc. date may also carry both parts ("2006-01-02T15:04" or with seconds),
// in which case clock must be empty.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if loc == nil {
		loc = time.Local
	}

	value := date
	if clock != "" {
		value = date + "T" + clock
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date and time must look like 2025-05-15 and 18:00, got %q", domain.ErrInvalidInput, value)
}
