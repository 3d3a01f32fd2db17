package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service"
)

// ClientHandler serves the client CRUD endpoints.
type ClientHandler struct {
	clients *service.ClientService
	logger  *slog.Logger
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(clients *service.ClientService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		clients: clients,
		logger:  logger.With(slog.String("handler", "client")),
	}
}

// List handles GET /api/clients. Supported query parameters: page,
// limit, status, search, and (admins only) managerId.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := service.ClientListFilter{
		Status:     domain.ClientStatus(q.Get("status")),
		Search:     q.Get("search"),
		ManagerID:  q.Get("managerId"),
		Pagination: paginationFromQuery(r),
	}

	page, err := h.clients.List(r.Context(), p, filter)
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /api/clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	client, err := h.clients.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, client)
}

// Create handles POST /api/clients. The created client is owned by the
// caller regardless of the payload.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req ClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	client, err := h.clients.Create(r.Context(), p, clientInput(req))
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, client)
}

// Update handles PUT /api/clients/{id}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req ClientRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	client, err := h.clients.Update(r.Context(), p, chi.URLParam(r, "id"), clientInput(req))
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, client)
}

// Delete handles DELETE /api/clients/{id}. Admin-only.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	if err := h.clients.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RandomPayload handles GET /api/clients/random-payload.
func (h *ClientHandler) RandomPayload(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	payload, err := h.clients.RandomPayload(r.Context(), p)
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, payload)
}

func clientInput(req ClientRequest) service.ClientInput {
	return service.ClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Status:  domain.ClientStatus(req.Status),
		Notes:   req.Notes,
	}
}
