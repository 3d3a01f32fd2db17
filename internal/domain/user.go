package domain

import (
	"strings"
	"time"
)

// Role identifies the authorization level of a user.
type Role string

// Known roles. Admins see every record; managers see only records they own.
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

// Principal is the authenticated actor issuing a request. It is built from
// verified token claims on every request and never persisted by the core.
type Principal struct {
	ID    string
	Email string
	Role  Role
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// User is a persisted account that can authenticate against the API.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal derives the request principal for this user.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

// DisplayName returns the user's name for denormalized display fields,
// falling back to the email address. Returns "" when neither is set.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return strings.TrimSpace(u.Email)
}
