package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/msomdec/family-events/internal/domain"
)

// Filter narrows an event listing. Zero values match everything.
type Filter struct {
	Search string             // matched against title and location, case and accent insensitive
	Type   domain.EventType   // "" for all types
	Status domain.EventStatus // "" for all statuses
	HostID string             // "" for all hosts
}

func (f Filter) matches(e *domain.Event) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.HostID != "" && e.HostID != f.HostID {
		return false
	}
	return matchesSearch(f.Search, e.Title, e.Location)
}

// Get returns the event with the given id.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

// List returns the events matching f, soonest first.
func (s *EventService) List(ctx context.Context, f Filter) ([]domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]domain.Event, 0, len(all))
	for i := range all {
		if f.matches(&all[i]) {
			out = append(out, all[i])
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Event) int {
		if c := a.DateTime.Compare(b.DateTime); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// HostedBy returns the events hosted by userID.
func (s *EventService) HostedBy(ctx context.Context, userID string) ([]domain.Event, error) {
	return s.List(ctx, Filter{HostID: userID})
}

// Guests returns the invitations of an event.
func (s *EventService) Guests(ctx context.Context, eventID string) ([]domain.EventGuest, error) {
	return s.guests.ListByEvent(ctx, eventID)
}

// PendingApproval returns the pending events the signed-in user hosts but
// did not create, i.e. the ones waiting on their decision.
func (s *EventService) PendingApproval(ctx context.Context) ([]domain.Event, error) {
	user, err := s.actor()
	if err != nil {
		return nil, err
	}
	hosted, err := s.List(ctx, Filter{HostID: user.ID, Status: domain.EventStatusPending})
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(hosted, func(e domain.Event) bool { return e.CreatorID == user.ID }), nil
}

// GuestView is an invitation with its user's display name resolved.
type GuestView struct {
	domain.EventGuest
	Name string
}

// EventDetails is everything the detail view of one event needs.
type EventDetails struct {
	Event       domain.Event
	HostName    string
	CreatorName string
	Guests      []GuestView
	Permissions domain.Permissions
}

// Details loads an event with its resolved names, guests, and what the
// signed-in user may do with it. Dangling user ids resolve to a placeholder.
func (s *EventService) Details(ctx context.Context, id string) (*EventDetails, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	guests, err := s.guests.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	user, _ := s.session.User()
	d := &EventDetails{
		Event:       *event,
		HostName:    s.displayName(ctx, event.HostID),
		CreatorName: s.displayName(ctx, event.CreatorID),
		Permissions: domain.PermissionsFor(user, event),
	}
	for _, g := range guests {
		d.Guests = append(d.Guests, GuestView{EventGuest: g, Name: s.displayName(ctx, g.UserID)})
	}
	return d, nil
}

func (s *EventService) displayName(ctx context.Context, userID string) string {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.UnknownUserName
	}
	return u.Name
}

// Dashboard is the summary shown on the home screen.
type Dashboard struct {
	Pending         int // all pending events
	Hosted          int // events the signed-in user hosts
	PendingApproval []domain.Event
}

// Dashboard summarizes the events relevant to the signed-in user. Without
// a signed-in user only the global pending count is filled in.
func (s *EventService) Dashboard(ctx context.Context) (*Dashboard, error) {
	all, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	d := &Dashboard{}
	user, signedIn := s.session.User()
	for _, e := range all {
		if e.Status == domain.EventStatusPending {
			d.Pending++
		}
		if !signedIn || e.HostID != user.ID {
			continue
		}
		d.Hosted++
		if e.Status == domain.EventStatusPending && e.CreatorID != user.ID {
			d.PendingApproval = append(d.PendingApproval, e)
		}
	}
	return d, nil
}

// Stats counts events per status for the admin overview.
type Stats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
	Canceled int
	// Upcoming counts approved events that have not happened yet.
	Upcoming int
}

// Stats returns the admin overview. Only admins may see it.
func (s *EventService) Stats(ctx context.Context) (*Stats, error) {
	user, err := s.actor()
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", domain.ErrUnauthorized)
	}

	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	st := &Stats{Total: len(all)}
	for _, e := range all {
		switch e.Status {
		case domain.EventStatusPending:
			st.Pending++
		case domain.EventStatusApproved:
			st.Approved++
			if e.DateTime.After(now) {
				st.Upcoming++
			}
		case domain.EventStatusRejected:
			st.Rejected++
		case domain.EventStatusCanceled:
			st.Canceled++
		}
	}
	return st, nil
}
