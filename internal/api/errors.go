package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service"
	"github.com/phrazzld/crm-api/internal/service/auth"
	"github.com/phrazzld/crm-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes
// without leaking internal error types or messages to clients.
// service.ErrNotVisible is deliberately absent: its status depends on
// the caller's role and is handled by HandleServiceError.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidClientStatus),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidTaskPriority):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the sanitized client-facing message for
// an error.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken):
		return "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrClientNotFound):
		return "Client not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidClientStatus),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidTaskPriority):
		return "Invalid request"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the error response for a failed service
// call. ErrNotVisible carries the role-dependent mapping: a manager who
// cannot see an entity gets 403 (the entity may well exist, they just
// cannot touch it), everyone else gets 404.
func HandleServiceError(w http.ResponseWriter, r *http.Request, p domain.Principal, err error) {
	if errors.Is(err, service.ErrNotVisible) {
		if p.Role == domain.RoleManager {
			shared.RespondWithError(w, r, http.StatusForbidden, "Access denied")
		} else {
			shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
		}
		return
	}
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
}
