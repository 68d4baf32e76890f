package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// HealthHandler serves liveness checks.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler constructs the health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Check reports service liveness and uptime.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "service healthy", fiber.Map{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}
