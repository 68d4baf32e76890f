package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/service"
	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// AuthHandler serves panel authentication.
type AuthHandler struct {
	accounts service.AccountService
	logger   zerolog.Logger
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(accounts service.AccountService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Login exchanges username/password for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.accounts.Login(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		}
		h.logger.Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	return utils.SendSuccess(c, "login successful", response)
}
