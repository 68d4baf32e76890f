package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// RequireRole ensures the authenticated account holds one of the allowed roles.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role := roleFromLocals(c)
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

func roleFromLocals(c *fiber.Ctx) models.UserRole {
	if value := c.Locals(LocalUserRole); value != nil {
		if str, ok := value.(string); ok {
			return models.UserRole(strings.ToUpper(strings.TrimSpace(str)))
		}
	}
	return ""
}
