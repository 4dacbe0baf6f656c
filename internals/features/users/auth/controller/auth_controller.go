// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	dto "schoolku_backend/internals/features/users/auth/dto"
	"schoolku_backend/internals/features/users/auth/service"
	userModel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:       db,
		Validate: validator.New(),
		Service:  service.NewAuthService(db),
	}
}

/* =========================
   POST /auth/register
========================= */
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AUTH] ❌ hash password gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pendaftaran")
	}

	user := userModel.UserModel{
		UserName: strings.TrimSpace(req.UserName),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hash),
		Role:     constants.RoleUser,
		IsActive: true,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		log.Printf("[AUTH] ❌ simpan user gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses pendaftaran")
	}

	return helper.JsonCreated(c, "Pendaftaran berhasil", dto.FromUserModel(&user))
}

/* =========================
   POST /auth/login
========================= */
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var userAgent, ip *string
	if ua := strings.TrimSpace(c.Get(fiber.HeaderUserAgent)); ua != "" {
		userAgent = &ua
	}
	if addr := strings.TrimSpace(c.IP()); addr != "" {
		ip = &addr
	}

	result, err := ctl.Service.Login(c.UserContext(), req.Email, req.Password, userAgent, ip)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[AUTH] ❌ login gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}

	setRefreshCookie(c, result.RefreshToken)

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: result.AccessToken,
		User:        dto.FromUserModel(result.User),
		StudentID:   result.StudentID,
	})
}

/* =========================
   POST /auth/refresh-token
========================= */
func (ctl *AuthController) RefreshToken(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies("refresh_token"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	result, err := ctl.Service.Refresh(c.UserContext(), raw)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[AUTH] ❌ refresh gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui token")
	}

	setRefreshCookie(c, result.RefreshToken)

	return helper.JsonOK(c, "Token diperbarui", dto.LoginResponse{
		AccessToken: result.AccessToken,
		User:        dto.FromUserModel(result.User),
		StudentID:   result.StudentID,
	})
}

/* =========================
   POST /auth/logout
========================= */
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	raw := ""
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		raw = strings.TrimSpace(authz[7:])
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ada")
	}

	if err := ctl.Service.Logout(c.UserContext(), raw); err != nil {
		log.Printf("[AUTH] ❌ logout gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout")
	}

	// hapus cookie refresh
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* =========================
   GET /auth/me
========================= */
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("id = ?", userID).
		Limit(1).
		Take(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	return helper.JsonOK(c, "Profil", dto.FromUserModel(&user))
}

func setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
