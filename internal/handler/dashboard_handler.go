package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/service"
	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// DashboardHandler serves the panel dashboard counters and the AI digest.
type DashboardHandler struct {
	dashboard service.DashboardService
	summary   service.SummaryService
	logger    zerolog.Logger
}

// NewDashboardHandler constructs the dashboard handler.
func NewDashboardHandler(dashboard service.DashboardService, summary service.SummaryService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		summary:   summary,
		logger:    logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Stats returns the registration counters scoped to the caller.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	response, err := h.dashboard.Stats(c.UserContext(), actorFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute dashboard stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute dashboard stats")
	}

	return utils.SendSuccess(c, "stats retrieved", response)
}

// Summary returns the best-effort AI digest. This endpoint never fails; every
// degraded path yields a fixed sentence instead.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "summary retrieved", h.summary.Summarize(c.UserContext(), actorFromContext(c)))
}
