// Package models defines the domain types exchanged with the library backend.
package models

// Role classifies what a signed-in user is allowed to see and do.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one the backend is known to issue.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Identity is an immutable snapshot of the authenticated user. It is replaced
// wholesale on re-verification, never mutated in place.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
