package domain

// The predicates below are pure functions of (user, event). A nil user or
// nil event never grants anything.

// IsHost reports whether u hosts e.
func IsHost(u *User, e *Event) bool {
	return u != nil && e != nil && u.ID == e.HostID
}

// IsCreator reports whether u created e.
func IsCreator(u *User, e *Event) bool {
	return u != nil && e != nil && u.ID == e.CreatorID
}

// CanApprove reports whether u may approve e: only the host, only while pending.
func CanApprove(u *User, e *Event) bool {
	return IsHost(u, e) && e.Status == EventStatusPending
}

// CanReject shares the approval gate.
func CanReject(u *User, e *Event) bool {
	return CanApprove(u, e)
}

// CanCancel reports whether u may cancel e: the creator or an admin, once approved.
func CanCancel(u *User, e *Event) bool {
	if e == nil || e.Status != EventStatusApproved {
		return false
	}
	return IsCreator(u, e) || u.IsAdmin()
}

// CanEdit reports whether u may change the fields of e.
func CanEdit(u *User, e *Event) bool {
	if e == nil {
		return false
	}
	return u.IsAdmin() || IsCreator(u, e) || IsHost(u, e)
}

// CanDelete reports whether u may delete e. A host who is neither admin nor
// creator may only delete an event that is not approved; an approved event
// has to be canceled instead.
func CanDelete(u *User, e *Event) bool {
	if e == nil {
		return false
	}
	return u.IsAdmin() || IsCreator(u, e) || (IsHost(u, e) && e.Status != EventStatusApproved)
}

// CanManageGuests reports whether u may invite or remove guests of e.
func CanManageGuests(u *User, e *Event) bool {
	return CanEdit(u, e)
}

// CanRespond reports whether u may move guest g to status next. The invited
// user answers a pending invitation; an admin may set any value.
func CanRespond(u *User, g *EventGuest, next GuestStatus) bool {
	if u == nil || g == nil || !next.Valid() {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return u.ID == g.UserID && g.Status.CanTransitionTo(next)
}

// InitialStatus returns the status a new event starts in. Self-hosted
// events need no approval.
func InitialStatus(creatorID, hostID string) EventStatus {
	if creatorID == hostID {
		return EventStatusApproved
	}
	return EventStatusPending
}

// Permissions is every event predicate evaluated for one (user, event) pair.
type Permissions struct {
	IsHost    bool
	IsCreator bool
	Approve   bool
	Reject    bool
	Cancel    bool
	Edit      bool
	Delete    bool
}

// PermissionsFor evaluates all event predicates for u on e.
func PermissionsFor(u *User, e *Event) Permissions {
	return Permissions{
		IsHost:    IsHost(u, e),
		IsCreator: IsCreator(u, e),
		Approve:   CanApprove(u, e),
		Reject:    CanReject(u, e),
		Cancel:    CanCancel(u, e),
		Edit:      CanEdit(u, e),
		Delete:    CanDelete(u, e),
	}
}
