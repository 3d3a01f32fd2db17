package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/mocks"
	"github.com/phrazzld/crm-api/internal/service"
)

func newTaskHandlerFixture(t *testing.T) (*TaskHandler, *mocks.MockTaskStore, *mocks.MockReminderEnqueuer) {
	t.Helper()
	tasks := mocks.NewMockTaskStore()
	reminders := mocks.NewMockReminderEnqueuer()
	svc := service.NewTaskService(tasks, mocks.NewMockClientStore(), mocks.NewMockCache(), reminders, testLogger())
	return NewTaskHandler(svc, testLogger()), tasks, reminders
}

func TestTaskHandlerCreateForcesAssignee(t *testing.T) {
	h, _, reminders := newTaskHandlerFixture(t)

	rec := httptest.NewRecorder()
	r := authedRequest(t, http.MethodPost, "/api/tasks", map[string]string{
		"title":    "Call Acme",
		"clientId": "client-1",
		"status":   "pending",
		"priority": "high",
		"dueDate":  "2026-09-15",
	}, managerPrincipal)
	h.Create(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Task
	decodeBody(t, rec, &created)
	assert.Equal(t, managerPrincipal.ID, created.AssigneeID)
	assert.Len(t, reminders.Enqueued(), 1)
}

func TestTaskHandlerCreateRejectsUnknownStatus(t *testing.T) {
	h, _, _ := newTaskHandlerFixture(t)

	rec := httptest.NewRecorder()
	r := authedRequest(t, http.MethodPost, "/api/tasks", map[string]string{
		"title":    "Bad",
		"clientId": "client-1",
		"status":   "someday",
		"priority": "high",
		"dueDate":  "2026-09-15",
	}, managerPrincipal)
	h.Create(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandlerGetRoleDependentStatus(t *testing.T) {
	h, tasks, _ := newTaskHandlerFixture(t)
	foreign := tasks.Seed(domain.Task{Title: "Foreign", AssigneeID: "someone-else"})

	rec := httptest.NewRecorder()
	r := withURLParam(authedRequest(t, http.MethodGet, "/api/tasks/"+foreign.ID, nil, managerPrincipal), "id", foreign.ID)
	h.Get(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r = withURLParam(authedRequest(t, http.MethodGet, "/api/tasks/nope", nil, adminPrincipal), "id", "nope")
	h.Get(rec, r)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskHandlerUpdateReassigns(t *testing.T) {
	h, tasks, _ := newTaskHandlerFixture(t)
	existing := tasks.Seed(domain.Task{Title: "Old", AssigneeID: adminPrincipal.ID})

	rec := httptest.NewRecorder()
	r := withURLParam(authedRequest(t, http.MethodPut, "/api/tasks/"+existing.ID, map[string]string{
		"title":    "New title",
		"clientId": "client-1",
		"status":   "completed",
		"priority": "low",
		"dueDate":  "2026-10-01",
	}, adminPrincipal), "id", existing.ID)
	h.Update(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.Task
	decodeBody(t, rec, &updated)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, adminPrincipal.ID, updated.AssigneeID)
}

func TestTaskHandlerDeleteIsAdminOnly(t *testing.T) {
	h, tasks, _ := newTaskHandlerFixture(t)
	mine := tasks.Seed(domain.Task{Title: "Mine", AssigneeID: managerPrincipal.ID})

	rec := httptest.NewRecorder()
	r := withURLParam(authedRequest(t, http.MethodDelete, "/api/tasks/"+mine.ID, nil, managerPrincipal), "id", mine.ID)
	h.Delete(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r = withURLParam(authedRequest(t, http.MethodDelete, "/api/tasks/"+mine.ID, nil, adminPrincipal), "id", mine.ID)
	h.Delete(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
