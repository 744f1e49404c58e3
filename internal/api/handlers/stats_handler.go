package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/mailroomhq/mailroom-backend/internal/api/response"
	"github.com/mailroomhq/mailroom-backend/internal/services"
)

// StatsHandler handles dashboard statistics HTTP requests
type StatsHandler struct {
	stats *services.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Dashboard handles GET /api/stats
func (h *StatsHandler) Dashboard(c echo.Context) error {
	stats, err := h.stats.Dashboard(c.Request().Context())
	if err != nil {
		return response.InternalError(c, "failed to compute stats")
	}

	return response.Success(c, stats)
}
