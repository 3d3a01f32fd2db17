package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/service"
)

// TaskHandler serves the task CRUD endpoints.
type TaskHandler struct {
	tasks  *service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks *service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("handler", "task")),
	}
}

// List handles GET /api/tasks. Supported query parameters: page, limit,
// status, and (admins only) assigneeId.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := service.TaskListFilter{
		Status:     domain.TaskStatus(q.Get("status")),
		AssigneeID: q.Get("assigneeId"),
		Pagination: paginationFromQuery(r),
	}

	page, err := h.tasks.List(r.Context(), p, filter)
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /api/tasks. The created task is assigned to the
// caller regardless of the payload.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), p, taskInput(req))
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}. The task is reassigned to the
// caller as part of the update.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), p, chi.URLParam(r, "id"), taskInput(req))
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}. Admin-only.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), p, chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RandomPayload handles GET /api/tasks/random-payload.
func (h *TaskHandler) RandomPayload(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	payload, err := h.tasks.RandomPayload(r.Context(), p)
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, payload)
}

func taskInput(req TaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	}
}
