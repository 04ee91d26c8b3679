package domain

import "context"

// Role distinguishes administrators from regular family members.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// UnknownUserName is shown wherever a creator, host or guest id does not
// resolve to a seeded user.
const UnknownUserName = "Usuário desconhecido"

// User represents a family member who can sign in.
type User struct {
	ID    string
	Name  string
	Email string
	Phone string // Optional
	Role  Role
}

// IsAdmin reports whether u has the admin role. A nil user is never admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserRepository defines read access to the user catalog.
// Users are seeded once and never mutated afterwards.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
