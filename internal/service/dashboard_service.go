package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/store"
)

const recentActivityLimit = 5

// RecentActivities is the uncached dashboard feed: the newest few
// clients and tasks within the principal's scope.
type RecentActivities struct {
	Clients []domain.Client `json:"clients"`
	Tasks   []domain.Task   `json:"tasks"`
}

// DashboardService computes the aggregate dashboard views. Stats are
// cached per scope; the activity feed is read fresh every time.
type DashboardService struct {
	clients store.ClientStore
	tasks   store.TaskStore
	cache   StatsCache
	logger  *slog.Logger
}

// NewDashboardService creates a DashboardService over the given stores.
func NewDashboardService(clients store.ClientStore, tasks store.TaskStore, cache StatsCache, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		clients: clients,
		tasks:   tasks,
		cache:   cache,
		logger:  logger.With(slog.String("service", "dashboard")),
	}
}

// GetStats returns the stats snapshot for the principal's scope,
// serving from cache when a fresh enough snapshot exists. Admins share
// one cache entry; each manager gets their own. An admin snapshot with
// a zero task count is treated as suspect and recomputed, so an admin
// never sees an empty dashboard just because a stale zero got cached.
// Cache trouble degrades to a fresh computation, never to an error.
func (s *DashboardService) GetStats(ctx context.Context, p domain.Principal) (*domain.Stats, error) {
	key := s.statsKey(p)

	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("stats cache read failed, recomputing", "key", key, "error", err)
	} else if hit {
		var stats domain.Stats
		if err := json.Unmarshal([]byte(cached), &stats); err != nil {
			s.logger.Warn("discarding malformed cached stats", "key", key, "error", err)
		} else if !(p.IsAdmin() && stats.Tasks == 0) {
			return &stats, nil
		}
	}

	stats, err := s.computeStats(ctx, p)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded), StatsTTL); err != nil {
			s.logger.Warn("stats cache write failed", "key", key, "error", err)
		}
	}

	return stats, nil
}

// RecentActivities returns the newest clients and tasks in the
// principal's scope, five of each. Deliberately uncached: the feed is
// what makes a fresh write show up on the dashboard immediately.
func (s *DashboardService) RecentActivities(ctx context.Context, p domain.Principal) (*RecentActivities, error) {
	ownerID := ""
	if !p.IsAdmin() {
		ownerID = p.ID
	}

	clients, _, err := s.clients.List(ctx, store.ClientQuery{
		ManagerID: ownerID,
		Limit:     recentActivityLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("loading recent clients: %w", err)
	}

	tasks, _, err := s.tasks.List(ctx, store.TaskQuery{
		AssigneeID: ownerID,
		Limit:      recentActivityLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("loading recent tasks: %w", err)
	}

	if clients == nil {
		clients = []domain.Client{}
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return &RecentActivities{Clients: clients, Tasks: tasks}, nil
}

func (s *DashboardService) statsKey(p domain.Principal) string {
	if p.IsAdmin() {
		return StatsAllKey
	}
	return StatsKeyPrefix + p.ID
}

func (s *DashboardService) computeStats(ctx context.Context, p domain.Principal) (*domain.Stats, error) {
	ownerID := ""
	if !p.IsAdmin() {
		ownerID = p.ID
	}

	clientCount, err := s.clients.Count(ctx, store.ClientQuery{ManagerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("counting clients: %w", err)
	}

	taskCount, err := s.tasks.Count(ctx, store.TaskQuery{AssigneeID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("counting tasks: %w", err)
	}

	statusCounts, err := s.tasks.StatusCounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("counting task statuses: %w", err)
	}

	return &domain.Stats{
		Clients:      clientCount,
		Tasks:        taskCount,
		TaskStatuses: domain.BuildTaskStatusCounts(statusCounts),
	}, nil
}
