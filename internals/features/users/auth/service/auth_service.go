// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	attService "schoolku_backend/internals/features/school/attendance/service"
	studentModel "schoolku_backend/internals/features/school/students/model"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/user/model"
)

/* ==========================
   Const & Types
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

type AuthService struct {
	DB     *gorm.DB
	Marker *attService.Marker
}

func NewAuthService(db *gorm.DB) *AuthService {
	loc, err := time.LoadLocation(configs.AttendanceTZ)
	if err != nil {
		loc = time.UTC
	}
	return &AuthService{
		DB:     db,
		Marker: attService.NewMarker(attService.NewGormStore(db), loc),
	}
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *userModel.UserModel
	StudentID    *uuid.UUID
}

/* ==========================
   Small helpers
========================== */

func accessTTL() time.Duration {
	if v := os.Getenv("JWT_ACCESS_TTL_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			return time.Duration(h) * time.Hour
		}
	}
	return accessTTLDefault
}

func refreshTTL() time.Duration {
	if v := os.Getenv("JWT_REFRESH_TTL_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			return time.Duration(h) * time.Hour
		}
	}
	return refreshTTLDefault
}

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

// HMAC-SHA256 dari refresh token — yang disimpan di DB hanya hash-nya.
func computeRefreshHash(raw, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return mac.Sum(nil)
}

/* ==========================
   Token issuing
========================== */

func issueAccessToken(user *userModel.UserModel, studentID *uuid.UUID) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"role": strings.ToLower(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTTL()).Unix(),
	}
	if studentID != nil {
		claims["student_id"] = studentID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func issueRefreshToken(userID uuid.UUID) (string, time.Time, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now().UTC()
	exp := now.Add(refreshTTL())
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return raw, exp, err
}

/* ==========================
   Login
========================== */

// Login memverifikasi kredensial lalu menerbitkan pasangan token.
// Setelah kredensial sah, auto-mark kehadiran dipicu di goroutine —
// login TIDAK PERNAH gagal atau melambat karena absensi.
func (s *AuthService) Login(ctx context.Context, email, password string, userAgent, ip *string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user userModel.UserModel
	err := s.DB.WithContext(ctx).
		Where("email = ?", email).
		Limit(1).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}

	// Siswa yang terhubung ke akun ini (kalau ada) → klaim student_id
	var studentID *uuid.UUID
	var st studentModel.StudentModel
	serr := s.DB.WithContext(ctx).
		Where("student_user_id = ?", user.ID).
		Limit(1).
		Take(&st).Error
	if serr == nil {
		id := st.StudentID
		studentID = &id
	} else if !errors.Is(serr, gorm.ErrRecordNotFound) {
		return nil, serr
	}

	access, err := issueAccessToken(&user, studentID)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}
	row := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refresh, refreshSecret),
		ExpiresAt: refreshExp,
		UserAgent: userAgent,
		IP:        ip,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	// Auto-mark kehadiran: non-blocking, error hanya dicatat
	if studentID != nil {
		sid := *studentID
		loginAt := time.Now()
		go func() {
			mctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if _, err := s.Marker.MarkFromLogin(mctx, sid, loginAt); err != nil {
				log.Printf("[AUTH] ⚠️ auto-mark kehadiran siswa %s gagal: %v", sid, err)
			}
		}()
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &user,
		StudentID:    studentID,
	}, nil
}

/* ==========================
   Refresh (rotate)
========================== */

func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*LoginResult, error) {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}

	tok, err := jwt.Parse(rawRefresh, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}

	hash := computeRefreshHash(rawRefresh, refreshSecret)
	var row authModel.RefreshToken
	err = s.DB.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, time.Now().UTC()).
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}
	if err != nil {
		return nil, err
	}

	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).
		Where("id = ?", userID).
		Limit(1).
		Take(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	var studentID *uuid.UUID
	var st studentModel.StudentModel
	serr := s.DB.WithContext(ctx).
		Where("student_user_id = ?", user.ID).
		Limit(1).
		Take(&st).Error
	if serr == nil {
		id := st.StudentID
		studentID = &id
	} else if !errors.Is(serr, gorm.ErrRecordNotFound) {
		return nil, serr
	}

	// ROTATE: cabut token lama sebelum terbitkan yang baru
	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).
		Model(&authModel.RefreshToken{}).
		Where("id = ?", row.ID).
		Update("revoked_at", now).Error; err != nil {
		log.Printf("[AUTH] ⚠️ revoke refresh lama gagal: %v", err)
	}

	access, err := issueAccessToken(&user, studentID)
	if err != nil {
		return nil, err
	}
	newRefresh, newExp, err := issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	newRow := authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(newRefresh, refreshSecret),
		ExpiresAt: newExp,
	}
	if err := s.DB.WithContext(ctx).Create(&newRow).Error; err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: newRefresh,
		User:         &user,
		StudentID:    studentID,
	}, nil
}

/* ==========================
   Logout & blacklist
========================== */

// Logout memasukkan access token ke blacklist sampai kadaluarsa alami.
func (s *AuthService) Logout(ctx context.Context, rawAccess string) error {
	secret, err := getJWTSecret()
	if err != nil {
		return err
	}

	expiredAt := time.Now().UTC().Add(accessTTL())
	if tok, perr := jwt.Parse(rawAccess, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); perr == nil && tok.Valid {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiredAt = time.Unix(int64(exp), 0).UTC()
			}
		}
	}

	row := authModel.TokenBlacklist{
		Token:     rawAccess,
		ExpiredAt: expiredAt,
	}
	err = s.DB.WithContext(ctx).Create(&row).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate") {
		// sudah di-blacklist — logout idempoten
		return nil
	}
	return err
}

// IsBlacklisted dipakai middleware AuthJWT sebagai BlacklistChecker.
func (s *AuthService) IsBlacklisted(rawToken string) (bool, error) {
	var count int64
	if err := s.DB.
		Model(&authModel.TokenBlacklist{}).
		Where("token = ?", rawToken).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
