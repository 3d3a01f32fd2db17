package shared

import (
	"context"

	"github.com/google/uuid"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service/auth"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

// Context keys for request-scoped values.
const (
	// ClaimsContextKey holds the authenticated token's claims.
	ClaimsContextKey ContextKey = "claims"

	// TokenContextKey holds the raw bearer token the principal presented.
	// Logout needs the exact string to revoke it.
	TokenContextKey ContextKey = "token"

	// TraceIDKey holds the per-request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID stamps the context with a fresh trace ID for correlating
// logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context, or "" when the
// context was never stamped.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithAuth stores the validated claims and the raw token they came from
// on the context.
func WithAuth(ctx context.Context, claims *auth.Claims, token string) context.Context {
	ctx = context.WithValue(ctx, ClaimsContextKey, claims)
	return context.WithValue(ctx, TokenContextKey, token)
}

// GetClaims retrieves the validated token claims from the context.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok
}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return domain.Principal{}, false
	}
	return claims.Principal(), true
}

// GetToken retrieves the raw bearer token from the context.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenContextKey).(string)
	return token, ok
}
