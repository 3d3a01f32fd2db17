package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/crm-api/internal/api/shared"
	"github.com/phrazzld/crm-api/internal/service"
)

// DashboardHandler serves the aggregate dashboard endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger.With(slog.String("handler", "dashboard")),
	}
}

// Stats handles GET /api/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboard.GetStats(r.Context(), p)
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// RecentActivities handles GET /api/recent-activities.
func (h *DashboardHandler) RecentActivities(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFromContext(w, r)
	if !ok {
		return
	}

	activities, err := h.dashboard.RecentActivities(r.Context(), p)
	if err != nil {
		HandleServiceError(w, r, p, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, activities)
}
