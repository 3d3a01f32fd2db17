package store

import (
	"context"

	"github.com/phrazzld/crm-api/internal/domain"
)

// UserUpdate carries the mutable profile fields of a user. Nil pointers
// leave the stored value untouched.
type UserUpdate struct {
	Name   *string
	Avatar *string
}

// UserStore persists user accounts.
type UserStore interface {
	// Create inserts a new user and fills in its generated ID and
	// CreatedAt. Returns ErrEmailExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns the user with the given ID or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail returns the user with the given email or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update applies the given profile changes and returns the updated
	// user, or ErrUserNotFound.
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)

	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// FindFirstByRole returns an arbitrary user with the given role, or
	// ErrUserNotFound when none exists.
	FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error)
}
