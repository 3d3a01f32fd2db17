package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/mocks"
)

func newDashboardFixture(t *testing.T) (*DashboardService, *mocks.MockClientStore, *mocks.MockTaskStore, *mocks.MockCache) {
	t.Helper()
	clients := mocks.NewMockClientStore()
	tasks := mocks.NewMockTaskStore()
	cache := mocks.NewMockCache()
	svc := NewDashboardService(clients, tasks, cache, testLogger())
	return svc, clients, tasks, cache
}

func TestDashboardStatsComputesPerScope(t *testing.T) {
	svc, clients, tasks, _ := newDashboardFixture(t)
	clients.Seed(domain.Client{ManagerID: managerPrincipal.ID})
	clients.Seed(domain.Client{ManagerID: otherManagerID})
	tasks.Seed(domain.Task{AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusPending})
	tasks.Seed(domain.Task{AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusCompleted})
	tasks.Seed(domain.Task{AssigneeID: otherManagerID, Status: domain.TaskStatusPending})

	adminStats, err := svc.GetStats(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminStats.Clients)
	assert.Equal(t, int64(3), adminStats.Tasks)

	managerStats, err := svc.GetStats(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), managerStats.Clients)
	assert.Equal(t, int64(2), managerStats.Tasks)
}

func TestDashboardStatsBreakdownIsFixedOrderAndComplete(t *testing.T) {
	svc, _, tasks, _ := newDashboardFixture(t)
	tasks.Seed(domain.Task{AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusInProgress})

	stats, err := svc.GetStats(context.Background(), managerPrincipal)
	require.NoError(t, err)

	require.Len(t, stats.TaskStatuses, 3)
	assert.Equal(t, "to-do", stats.TaskStatuses[0].Label)
	assert.Equal(t, int64(0), stats.TaskStatuses[0].Count)
	assert.Equal(t, "in progress", stats.TaskStatuses[1].Label)
	assert.Equal(t, int64(1), stats.TaskStatuses[1].Count)
	assert.Equal(t, "done", stats.TaskStatuses[2].Label)
	assert.Equal(t, "#10B981", stats.TaskStatuses[2].Color)
}

func TestDashboardStatsServesFromCache(t *testing.T) {
	svc, clients, _, cache := newDashboardFixture(t)
	clients.Seed(domain.Client{ManagerID: managerPrincipal.ID})

	first, err := svc.GetStats(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Clients)

	ttl, ok := cache.TTL(StatsKeyPrefix + managerPrincipal.ID)
	require.True(t, ok)
	assert.Equal(t, StatsTTL, ttl)

	// New writes are not visible until the cache is invalidated.
	clients.Seed(domain.Client{ManagerID: managerPrincipal.ID})
	second, err := svc.GetStats(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Clients)

	require.NoError(t, cache.DeleteByPrefix(context.Background(), StatsKeyPrefix))
	third, err := svc.GetStats(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(2), third.Clients)
}

func TestDashboardStatsRecomputesCachedAdminZero(t *testing.T) {
	svc, _, tasks, cache := newDashboardFixture(t)
	tasks.Seed(domain.Task{AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusPending})

	// A stale snapshot with zero tasks sits in the admin cache slot.
	stale, err := json.Marshal(domain.Stats{Clients: 0, Tasks: 0})
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), StatsAllKey, string(stale), StatsTTL))

	stats, err := svc.GetStats(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Tasks)
}

func TestDashboardStatsKeepsCachedManagerZero(t *testing.T) {
	svc, _, tasks, cache := newDashboardFixture(t)
	tasks.Seed(domain.Task{AssigneeID: managerPrincipal.ID, Status: domain.TaskStatusPending})

	// The zero-recompute guard applies to the admin slot only.
	stale, err := json.Marshal(domain.Stats{Clients: 0, Tasks: 0})
	require.NoError(t, err)
	key := StatsKeyPrefix + managerPrincipal.ID
	require.NoError(t, cache.Set(context.Background(), key, string(stale), StatsTTL))

	stats, err := svc.GetStats(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Tasks)
}

func TestDashboardStatsDiscardsMalformedCacheEntry(t *testing.T) {
	svc, clients, _, cache := newDashboardFixture(t)
	clients.Seed(domain.Client{ManagerID: managerPrincipal.ID})
	require.NoError(t, cache.Set(context.Background(), StatsKeyPrefix+managerPrincipal.ID, "{not json", StatsTTL))

	stats, err := svc.GetStats(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Clients)
}

func TestDashboardRecentActivitiesScopedAndCapped(t *testing.T) {
	svc, clients, tasks, _ := newDashboardFixture(t)
	for i := 0; i < 7; i++ {
		clients.Seed(domain.Client{Name: "c", ManagerID: managerPrincipal.ID})
		tasks.Seed(domain.Task{Title: "t", AssigneeID: managerPrincipal.ID})
	}
	clients.Seed(domain.Client{Name: "foreign", ManagerID: otherManagerID})

	feed, err := svc.RecentActivities(context.Background(), managerPrincipal)
	require.NoError(t, err)
	assert.Len(t, feed.Clients, 5)
	assert.Len(t, feed.Tasks, 5)
	for _, c := range feed.Clients {
		assert.Equal(t, managerPrincipal.ID, c.ManagerID)
	}
}

func TestDashboardRecentActivitiesEmptyIsNotNil(t *testing.T) {
	svc, _, _, _ := newDashboardFixture(t)

	feed, err := svc.RecentActivities(context.Background(), adminPrincipal)
	require.NoError(t, err)
	assert.NotNil(t, feed.Clients)
	assert.NotNil(t, feed.Tasks)
	assert.Empty(t, feed.Clients)
	assert.Empty(t, feed.Tasks)
}
