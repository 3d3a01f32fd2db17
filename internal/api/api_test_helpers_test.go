package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service/auth"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	adminPrincipal   = domain.Principal{ID: "user-admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	managerPrincipal = domain.Principal{ID: "user-manager", Email: "manager@example.com", Role: domain.RoleManager}
)

// authedRequest builds a request whose context carries the given
// principal, as the auth middleware would have left it.
func authedRequest(t *testing.T, method, target string, body interface{}, p domain.Principal) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)

	claims := &auth.Claims{
		UserID:    p.ID,
		Email:     p.Email,
		Role:      p.Role,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return r.WithContext(shared.WithAuth(r.Context(), claims, "test-token-"+p.ID))
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody unmarshals the recorded response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
