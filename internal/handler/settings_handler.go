package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/service"
	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// SettingsHandler serves the app settings endpoints.
type SettingsHandler struct {
	settings service.SettingsService
	logger   zerolog.Logger
}

// NewSettingsHandler constructs the settings handler.
func NewSettingsHandler(settings service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger.With().Str("component", "settings_handler").Logger(),
	}
}

// Get returns the current settings. This never fails; defaults are returned
// when nothing has been saved yet.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "settings retrieved", h.settings.Get(c.UserContext()))
}

// Update replaces the settings record.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var payload dto.SettingsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.settings.Update(c.UserContext(), payload)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to update settings")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update settings")
	}

	return utils.SendSuccess(c, "settings updated", response)
}
