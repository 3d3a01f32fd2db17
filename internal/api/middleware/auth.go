package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/service/auth"
)

// TokenChecker reports whether a token has been revoked.
type TokenChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware authenticates requests by bearer token: signature and
// validity window via the JWT service, revocation via the blacklist.
type AuthMiddleware struct {
	jwtService auth.JWTService
	blacklist  TokenChecker
}

// NewAuthMiddleware creates an AuthMiddleware with the given
// collaborators.
func NewAuthMiddleware(jwtService auth.JWTService, blacklist TokenChecker) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// Authenticate validates the Authorization header and places the
// resulting principal and raw token on the request context. Revoked
// tokens are rejected even when their signature is still valid.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}
		token := parts[1]

		revoked, err := m.blacklist.IsTokenBlacklisted(r.Context(), token)
		if err != nil {
			slog.Error("failed to check token revocation", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}
		if revoked {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Token revoked")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithAuth(r.Context(), claims, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
