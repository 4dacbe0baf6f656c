// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Ambil user_id dari c.Locals("user_id")
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "user_id", "User belum login")
}

// Ambil student_id dari c.Locals("student_id") (diisi AuthJWT bila klaim ada)
func GetStudentIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "student_id", "Akun ini tidak terhubung ke data siswa")
}

// Ambil role dari c.Locals("role"); default "user"
func GetRoleFromToken(c *fiber.Ctx) string {
	if v := c.Locals("role"); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return "user"
}

func localsUUID(c *fiber.Ctx, key, emptyMsg string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID pada token tidak valid")
	}
}
