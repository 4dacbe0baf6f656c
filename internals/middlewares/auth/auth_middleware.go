package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(rawToken string) (bool, error) // return true if blacklisted
	AllowCookieFallback bool                                // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi access token dan menghidrasi Locals:
// user_id, role, student_id (jika klaimnya ada).
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Cek blacklist (opsional)
		if o.BlacklistChecker != nil {
			if black, err := o.BlacklistChecker(raw); err == nil && black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
			}
		}

		// 3) Parse + verifikasi algoritma
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		// Simpan raw claims (opsional)
		c.Locals("jwt_claims", claims)

		// user_id: ambil id/sub/user_id dalam urutan preferensi
		switch {
		case strClaim(claims, "id") != "":
			c.Locals("user_id", strClaim(claims, "id"))
		case strClaim(claims, "sub") != "":
			c.Locals("user_id", strClaim(claims, "sub"))
		case strClaim(claims, "user_id") != "":
			c.Locals("user_id", strClaim(claims, "user_id"))
		}

		if role := strClaim(claims, "role"); role != "" {
			c.Locals("role", strings.ToLower(role))
		} else {
			c.Locals("role", "user")
		}

		if sid := strClaim(claims, "student_id"); sid != "" {
			c.Locals("student_id", sid)
		}

		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
