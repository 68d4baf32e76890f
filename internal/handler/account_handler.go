package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/service"
	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// AccountHandler serves the super-admin account management endpoints.
type AccountHandler struct {
	accounts service.AccountService
	logger   zerolog.Logger
}

// NewAccountHandler constructs the account handler.
func NewAccountHandler(accounts service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With().Str("component", "account_handler").Logger(),
	}
}

// Create adds a panel account.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var payload dto.AccountCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.accounts.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) || errors.Is(err, service.ErrEmptyUsername) || errors.Is(err, service.ErrInvalidLevel) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create account")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", response)
}

// List returns all panel accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	response, err := h.accounts.List(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list accounts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list accounts")
	}

	return utils.SendSuccess(c, "accounts retrieved", response)
}

// Delete removes an account. The bootstrap super-admin is refused.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	err := h.accounts.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			return utils.SendError(c, fiber.StatusNotFound, service.ErrAccountNotFound.Error())
		case errors.Is(err, service.ErrBootstrapAccount):
			return utils.SendError(c, fiber.StatusForbidden, service.ErrBootstrapAccount.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to delete account")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete account")
		}
	}

	return utils.SendSuccess(c, "account deleted", nil)
}
