package api

import (
	"net/http"
	"strconv"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service"
)

// principalFromContext extracts the authenticated principal, writing
// the 401 itself when the auth middleware never ran.
func principalFromContext(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := shared.GetPrincipal(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return domain.Principal{}, false
	}
	return p, true
}

// decodeAndValidate decodes the body into v and validates it, writing
// the 400 itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithValidationError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithValidationError(w, r, err)
		return false
	}
	return true
}

// paginationFromQuery reads page and limit query parameters. Values
// that are absent or not integers fall back to zero; the service layer
// clamps from there.
func paginationFromQuery(r *http.Request) service.Pagination {
	return service.Pagination{
		Page:  queryInt(r, "page"),
		Limit: queryInt(r, "limit"),
	}
}

func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
