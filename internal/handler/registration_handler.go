package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/service"
	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// RegistrationHandler serves the public landing-page endpoints. Nothing here
// requires authentication.
type RegistrationHandler struct {
	registrations service.RegistrationService
	logger        zerolog.Logger
}

// NewRegistrationHandler constructs the public intake handler.
func NewRegistrationHandler(registrations service.RegistrationService, logger zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		logger:        logger.With().Str("component", "registration_handler").Logger(),
	}
}

// CreateWhatsAppLink builds the pre-filled registration deep link from the
// four intake fields.
func (h *RegistrationHandler) CreateWhatsAppLink(c *fiber.Ctx) error {
	var payload dto.RegistrationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.registrations.BuildRegistrationLink(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) || errors.Is(err, service.ErrInvalidLevel) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to build registration link")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build registration link")
	}

	return utils.SendSuccess(c, "registration link created", response)
}

// ContactLink builds the generic ask-a-question deep link.
func (h *RegistrationHandler) ContactLink(c *fiber.Ctx) error {
	response := h.registrations.BuildContactLink(c.UserContext())
	return utils.SendSuccess(c, "contact link created", response)
}

// Levels returns the fixed list of school levels shown on the landing page.
func (h *RegistrationHandler) Levels(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "levels retrieved", models.SchoolLevels())
}

// RequiredDocuments returns the berkas checklist for applicants.
func (h *RegistrationHandler) RequiredDocuments(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "required documents retrieved", models.RequiredDocuments())
}
