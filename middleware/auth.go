package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"student-performance-dashboard/utils"
)

// AuthRequired validates the bearer token and stores the username and role
// in c.Locals.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals("username", claims.Username)
		c.Locals("role_name", claims.RoleName)
		return c.Next()
	}
}

// RoleAllowed rejects requests whose token role is not one of roles.
func RoleAllowed(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role_name").(string)
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}
}
