package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dhia-elwidad/spmb-api/internal/middleware"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/service"
)

// actorFromContext rebuilds the acting admin from the JWT claims stored by
// the auth middleware. Visibility scope is derived fresh on every request.
func actorFromContext(c *fiber.Ctx) service.Actor {
	actor := service.Actor{
		ID:       localString(c, middleware.LocalUserID),
		Username: localString(c, middleware.LocalUsername),
		Role:     models.UserRole(localString(c, middleware.LocalUserRole)),
	}

	if raw := localString(c, middleware.LocalAssignedLevel); raw != "" {
		level := models.SchoolLevel(raw)
		if level.IsValid() {
			actor.AssignedLevel = &level
		}
	}

	return actor
}

func localString(c *fiber.Ctx, key string) string {
	if value := c.Locals(key); value != nil {
		if str, ok := value.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}

func parseQueryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func isValidationError(err error) bool {
	var validationErrs validator.ValidationErrors
	return errors.As(err, &validationErrs)
}
