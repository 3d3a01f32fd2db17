package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleManager.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("superuser").Valid())
}

func TestPrincipalIsAdmin(t *testing.T) {
	assert.True(t, Principal{Role: RoleAdmin}.IsAdmin())
	assert.False(t, Principal{Role: RoleManager}.IsAdmin())
}

func TestUserDisplayName(t *testing.T) {
	named := User{Name: "Jordan", Email: "j@example.com"}
	assert.Equal(t, "Jordan", named.DisplayName())

	unnamed := User{Name: "  ", Email: "j@example.com"}
	assert.Equal(t, "j@example.com", unnamed.DisplayName())
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{Email: "j@example.com", PasswordHash: "secret-hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
}

func TestClientStatusValid(t *testing.T) {
	for _, s := range ClientStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, ClientStatus("archived").Valid())
}

func TestTaskStatusAndPriorityValid(t *testing.T) {
	for _, s := range TaskStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, TaskStatus("someday").Valid())

	for _, p := range TaskPriorities {
		assert.True(t, p.Valid())
	}
	assert.False(t, TaskPriority("urgent").Valid())
}

func TestBuildTaskStatusCounts(t *testing.T) {
	counts := BuildTaskStatusCounts(map[TaskStatus]int64{
		TaskStatusPending:   3,
		TaskStatusCompleted: 1,
	})

	require.Len(t, counts, 3)
	assert.Equal(t, TaskStatusCount{Label: "to-do", Count: 3, Color: "#3B82F6"}, counts[0])
	assert.Equal(t, TaskStatusCount{Label: "in progress", Count: 0, Color: "#F59E0B"}, counts[1])
	assert.Equal(t, TaskStatusCount{Label: "done", Count: 1, Color: "#10B981"}, counts[2])
}

func TestBuildTaskStatusCountsNilMap(t *testing.T) {
	counts := BuildTaskStatusCounts(nil)
	require.Len(t, counts, 3)
	for _, c := range counts {
		assert.Zero(t, c.Count)
	}
}
