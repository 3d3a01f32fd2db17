package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/mocks"
	"github.com/phrazzld/crm-api/internal/service/auth"
)

func authFixture(t *testing.T) (*AuthMiddleware, *mocks.MockJWTService, *mocks.MockCache) {
	t.Helper()
	jwt := mocks.NewMockJWTService()
	cache := mocks.NewMockCache()
	return NewAuthMiddleware(jwt, cache), jwt, cache
}

// nextRecorder is a terminal handler that records the principal it saw.
type nextRecorder struct {
	called    bool
	principal domain.Principal
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.principal, _ = shared.GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mw, _, _ := authFixture(t)
	next := &nextRecorder{}

	rec := httptest.NewRecorder()
	mw.Authenticate(next.handler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	mw, _, _ := authFixture(t)
	next := &nextRecorder{}

	for _, header := range []string{"Basic abc", "Bearer", "Bearer a b"} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		mw.Authenticate(next.handler()).ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.False(t, next.called)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	mw, _, _ := authFixture(t)
	next := &nextRecorder{}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	mw.Authenticate(next.handler()).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	mw, jwt, _ := authFixture(t)
	jwt.ValidateTokenFn = func(ctx context.Context, token string) (*auth.Claims, error) {
		return nil, auth.ErrExpiredToken
	}
	next := &nextRecorder{}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	mw.Authenticate(next.handler()).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestAuthenticateRevokedToken(t *testing.T) {
	mw, jwt, cache := authFixture(t)
	user := &domain.User{ID: "user-1", Email: "u@example.com", Role: domain.RoleManager}
	token, _, err := jwt.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	require.NoError(t, cache.BlacklistToken(context.Background(), token, time.Hour))

	next := &nextRecorder{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.Authenticate(next.handler()).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token revoked")
	assert.False(t, next.called)
}

func TestAuthenticateSuccessPopulatesContext(t *testing.T) {
	mw, jwt, _ := authFixture(t)
	user := &domain.User{ID: "user-1", Email: "u@example.com", Role: domain.RoleAdmin}
	token, _, err := jwt.GenerateToken(context.Background(), user)
	require.NoError(t, err)

	next := &nextRecorder{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.Authenticate(next.handler()).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	assert.Equal(t, "user-1", next.principal.ID)
	assert.Equal(t, domain.RoleAdmin, next.principal.Role)
}
