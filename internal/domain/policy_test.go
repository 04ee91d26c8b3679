package domain_test

import (
	"testing"

	"github.com/msomdec/family-events/internal/domain"
)

var (
	admin = &domain.User{ID: "1", Name: "Admin Usuario", Role: domain.RoleAdmin}
	joao  = &domain.User{ID: "2", Name: "João Silva", Role: domain.RoleUser}
	maria = &domain.User{ID: "3", Name: "Maria Oliveira", Role: domain.RoleUser}
	pedro = &domain.User{ID: "4", Name: "Pedro Santos", Role: domain.RoleUser}
)

func eventWith(creator, host string, status domain.EventStatus) *domain.Event {
	return &domain.Event{ID: "e", CreatorID: creator, HostID: host, Status: status}
}

func TestPolicy_CanApprove(t *testing.T) {
	tests := []struct {
		name  string
		user  *domain.User
		event *domain.Event
		want  bool
	}{
		{"host on pending", maria, eventWith("2", "3", domain.EventStatusPending), true},
		{"host on approved", maria, eventWith("2", "3", domain.EventStatusApproved), false},
		{"host on rejected", maria, eventWith("2", "3", domain.EventStatusRejected), false},
		{"creator on pending", joao, eventWith("2", "3", domain.EventStatusPending), false},
		{"admin on pending", admin, eventWith("2", "3", domain.EventStatusPending), false},
		{"stranger on pending", pedro, eventWith("2", "3", domain.EventStatusPending), false},
		{"nil user", nil, eventWith("2", "3", domain.EventStatusPending), false},
		{"nil event", maria, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.CanApprove(tc.user, tc.event); got != tc.want {
				t.Fatalf("CanApprove = %v, want %v", got, tc.want)
			}
			if got := domain.CanReject(tc.user, tc.event); got != tc.want {
				t.Fatalf("CanReject = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPolicy_CanCancel(t *testing.T) {
	tests := []struct {
		name  string
		user  *domain.User
		event *domain.Event
		want  bool
	}{
		{"creator on approved", joao, eventWith("2", "3", domain.EventStatusApproved), true},
		{"admin on approved", admin, eventWith("2", "3", domain.EventStatusApproved), true},
		{"host on approved", maria, eventWith("2", "3", domain.EventStatusApproved), false},
		{"creator on pending", joao, eventWith("2", "3", domain.EventStatusPending), false},
		{"admin on canceled", admin, eventWith("2", "3", domain.EventStatusCanceled), false},
		{"nil user", nil, eventWith("2", "3", domain.EventStatusApproved), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.CanCancel(tc.user, tc.event); got != tc.want {
				t.Fatalf("CanCancel = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPolicy_CanEdit(t *testing.T) {
	ev := eventWith("2", "3", domain.EventStatusRejected)
	for _, u := range []*domain.User{admin, joao, maria} {
		if !domain.CanEdit(u, ev) {
			t.Fatalf("expected %s to be able to edit", u.Name)
		}
	}
	if domain.CanEdit(pedro, ev) {
		t.Fatal("expected unrelated user to be denied edit")
	}
	if domain.CanEdit(nil, ev) {
		t.Fatal("expected nil user to be denied edit")
	}
}

func TestPolicy_CanDelete(t *testing.T) {
	tests := []struct {
		name  string
		user  *domain.User
		event *domain.Event
		want  bool
	}{
		{"admin on approved", admin, eventWith("2", "3", domain.EventStatusApproved), true},
		{"admin on pending", admin, eventWith("2", "3", domain.EventStatusPending), true},
		{"creator on approved", joao, eventWith("2", "3", domain.EventStatusApproved), true},
		{"host on pending", maria, eventWith("2", "3", domain.EventStatusPending), true},
		{"host on rejected", maria, eventWith("2", "3", domain.EventStatusRejected), true},
		{"host on approved", maria, eventWith("2", "3", domain.EventStatusApproved), false},
		{"stranger", pedro, eventWith("2", "3", domain.EventStatusPending), false},
		{"nil user", nil, eventWith("2", "3", domain.EventStatusPending), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.CanDelete(tc.user, tc.event); got != tc.want {
				t.Fatalf("CanDelete = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPolicy_CanRespond(t *testing.T) {
	pending := &domain.EventGuest{ID: "g", EventID: "e", UserID: "4", Status: domain.GuestStatusPending}
	confirmed := &domain.EventGuest{ID: "g", EventID: "e", UserID: "4", Status: domain.GuestStatusConfirmed}

	if !domain.CanRespond(pedro, pending, domain.GuestStatusConfirmed) {
		t.Fatal("expected guest to confirm a pending invite")
	}
	if !domain.CanRespond(pedro, pending, domain.GuestStatusDeclined) {
		t.Fatal("expected guest to decline a pending invite")
	}
	if domain.CanRespond(pedro, confirmed, domain.GuestStatusDeclined) {
		t.Fatal("expected guest to be unable to change an answered invite")
	}
	if domain.CanRespond(joao, pending, domain.GuestStatusConfirmed) {
		t.Fatal("expected another user to be denied")
	}
	if !domain.CanRespond(admin, confirmed, domain.GuestStatusPending) {
		t.Fatal("expected admin override to any value")
	}
	if domain.CanRespond(admin, confirmed, domain.GuestStatus("maybe")) {
		t.Fatal("expected unknown status to be denied even for admin")
	}
}

func TestPolicy_InitialStatus(t *testing.T) {
	if got := domain.InitialStatus("2", "3"); got != domain.EventStatusPending {
		t.Fatalf("expected pending for foreign host, got %s", got)
	}
	if got := domain.InitialStatus("2", "2"); got != domain.EventStatusApproved {
		t.Fatalf("expected approved for self-hosted, got %s", got)
	}
}

// CanApprove must only ever hold for the host of a pending event.
func TestPolicy_ApproveImpliesHostAndPending(t *testing.T) {
	users := []*domain.User{nil, admin, joao, maria, pedro}
	ids := []string{"1", "2", "3", "4", "missing"}
	for _, u := range users {
		for _, creator := range ids {
			for _, host := range ids {
				for _, st := range domain.EventStatuses {
					ev := eventWith(creator, host, st)
					if domain.CanApprove(u, ev) && (u.ID != ev.HostID || ev.Status != domain.EventStatusPending) {
						t.Fatalf("CanApprove granted to %v on %+v", u, ev)
					}
				}
			}
		}
	}
}

func TestPermissionsFor(t *testing.T) {
	p := domain.PermissionsFor(maria, eventWith("2", "3", domain.EventStatusPending))
	want := domain.Permissions{IsHost: true, Approve: true, Reject: true, Edit: true, Delete: true}
	if p != want {
		t.Fatalf("expected %+v, got %+v", want, p)
	}
}
