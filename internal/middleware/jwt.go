package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dhia-elwidad/spmb-api/internal/utils"
)

// Context keys populated by the JWT middleware.
const (
	LocalUserID        = "user_id"
	LocalUsername      = "username"
	LocalUserRole      = "user_role"
	LocalAssignedLevel = "assigned_level"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// exposes the account claims to handlers.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		if sub := stringClaim(claims, "sub"); sub != "" {
			c.Locals(LocalUserID, sub)
		}
		if username := stringClaim(claims, "username"); username != "" {
			c.Locals(LocalUsername, username)
		}
		if role := stringClaim(claims, "role"); role != "" {
			c.Locals(LocalUserRole, strings.ToUpper(role))
		}
		if level := stringClaim(claims, "assigned_level"); level != "" {
			c.Locals(LocalAssignedLevel, level)
		}

		return c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key]; ok {
		if str, ok := value.(string); ok {
			return strings.TrimSpace(str)
		}
	}
	return ""
}
