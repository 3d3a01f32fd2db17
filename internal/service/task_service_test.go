package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/mocks"
)

func newTaskFixture(t *testing.T) (*TaskService, *mocks.MockTaskStore, *mocks.MockClientStore, *mocks.MockCache, *mocks.MockReminderEnqueuer) {
	t.Helper()
	tasks := mocks.NewMockTaskStore()
	clients := mocks.NewMockClientStore()
	cache := mocks.NewMockCache()
	reminders := mocks.NewMockReminderEnqueuer()
	svc := NewTaskService(tasks, clients, cache, reminders, testLogger())
	return svc, tasks, clients, cache, reminders
}

func TestTaskServiceListScopesManagersToOwnTasks(t *testing.T) {
	svc, tasks, _, _, _ := newTaskFixture(t)
	tasks.Seed(domain.Task{Title: "Mine", AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusPending})
	tasks.Seed(domain.Task{Title: "Theirs", AssigneeID: otherManagerID, Status: domain.TaskStatusPending})

	page, err := svc.List(context.Background(), managerPrincipal, TaskListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mine", page.Items[0].Title)

	// The assignee filter only works for admins.
	page, err = svc.List(context.Background(), managerPrincipal, TaskListFilter{AssigneeID: otherManagerID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mine", page.Items[0].Title)

	page, err = svc.List(context.Background(), adminPrincipal, TaskListFilter{AssigneeID: otherManagerID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Theirs", page.Items[0].Title)
}

func TestTaskServiceListFiltersByStatus(t *testing.T) {
	svc, tasks, _, _, _ := newTaskFixture(t)
	tasks.Seed(domain.Task{Title: "Open", AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusPending})
	tasks.Seed(domain.Task{Title: "Done", AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusCompleted})

	page, err := svc.List(context.Background(), managerPrincipal, TaskListFilter{Status: domain.TaskStatusCompleted})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Done", page.Items[0].Title)
}

func TestTaskServiceCreateForcesAssigneeAndQueuesReminder(t *testing.T) {
	svc, _, _, cache, reminders := newTaskFixture(t)

	created, err := svc.Create(context.Background(), managerPrincipal, TaskInput{
		Title:    "Call the client",
		ClientID: "client-1",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityHigh,
		DueDate:  "2026-09-15",
	})
	require.NoError(t, err)

	assert.Equal(t, managerPrincipal.ID, created.AssigneeID)
	assert.Contains(t, cache.DeletedPrefixes, StatsKeyPrefix)

	enqueued := reminders.Enqueued()
	require.Len(t, enqueued, 1)
	assert.Equal(t, "Call the client", enqueued[0].Title)
	assert.Equal(t, "2026-09-15", enqueued[0].DueDate)
}

func TestTaskServiceCreateSurvivesReminderFailure(t *testing.T) {
	svc, _, _, _, reminders := newTaskFixture(t)
	reminders.Err = errors.New("redis down")

	created, err := svc.Create(context.Background(), managerPrincipal, TaskInput{
		Title:    "Still created",
		ClientID: "client-1",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityLow,
		DueDate:  "2026-09-15",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestTaskServiceUpdateReassignsToActor(t *testing.T) {
	svc, tasks, _, _, _ := newTaskFixture(t)
	mine := tasks.Seed(domain.Task{Title: "Mine", AssigneeID: adminPrincipal.ID, Status: domain.TaskStatusPending})

	// The admin can touch any task, and touching it takes it over.
	updated, err := svc.Update(context.Background(), adminPrincipal, mine.ID, TaskInput{
		Title:    "Updated",
		ClientID: "client-1",
		Status:   domain.TaskStatusInProgress,
		Priority: domain.TaskPriorityMedium,
		DueDate:  "2026-10-01",
	})
	require.NoError(t, err)
	assert.Equal(t, adminPrincipal.ID, updated.AssigneeID)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
}

func TestTaskServiceUpdateRejectsOutOfScope(t *testing.T) {
	svc, tasks, _, _, _ := newTaskFixture(t)
	theirs := tasks.Seed(domain.Task{Title: "Theirs", AssigneeID: otherManagerID})

	_, err := svc.Update(context.Background(), managerPrincipal, theirs.ID, TaskInput{Title: "Hijack"})
	assert.ErrorIs(t, err, ErrNotVisible)
}

func TestTaskServiceDeleteIsAdminOnly(t *testing.T) {
	svc, tasks, _, _, _ := newTaskFixture(t)
	mine := tasks.Seed(domain.Task{Title: "Mine", AssigneeID: managerPrincipal.ID})

	err := svc.Delete(context.Background(), managerPrincipal, mine.ID)
	assert.ErrorIs(t, err, ErrNotVisible)

	require.NoError(t, svc.Delete(context.Background(), adminPrincipal, mine.ID))

	err = svc.Delete(context.Background(), adminPrincipal, mine.ID)
	assert.ErrorIs(t, err, ErrNotVisible)
}

func TestTaskServiceRandomPayloadUsesExistingClient(t *testing.T) {
	svc, _, clients, _, _ := newTaskFixture(t)

	// No clients yet: the payload leaves the client blank.
	payload, err := svc.RandomPayload(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Empty(t, payload.ClientID)
	assert.Equal(t, managerPrincipal.ID, payload.AssigneeID)
	assert.True(t, payload.Status.Valid())
	assert.True(t, payload.Priority.Valid())
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, payload.DueDate)

	existing := clients.Seed(domain.Client{Name: "Acme", ManagerID: managerPrincipal.ID})
	payload, err = svc.RandomPayload(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, payload.ClientID)
}
