package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// OnlyRolesSlice menolak request bila role di token tidak ada dalam daftar.
func OnlyRolesSlice(errMessage string, allowedRoles []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || strings.TrimSpace(role) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Role not found")
		}
		role = strings.ToLower(strings.TrimSpace(role))
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, errMessage)
	}
}
