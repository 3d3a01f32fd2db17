package auth

import (
	"context"
	"time"

	"github.com/phrazzld/crm-api/internal/domain"
)

// Claims is the validated content of a bearer token.
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal converts the claims into a request principal.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{ID: c.UserID, Email: c.Email, Role: c.Role}
}

// RemainingValidity returns how long the token is still valid at the
// given instant. Non-positive means expired.
func (c *Claims) RemainingValidity(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}

// JWTService issues and validates bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token for the given user, returning
	// the token string and its expiry instant.
	GenerateToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateToken checks the token's signature and validity window and
	// returns its claims. Returns ErrExpiredToken or ErrInvalidToken.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
