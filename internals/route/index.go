// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	attendanceRoute "schoolku_backend/internals/features/school/attendance/route"
	scheduleRoute "schoolku_backend/internals/features/school/class_schedules/route"
	classRoute "schoolku_backend/internals/features/school/classes/route"
	schoolRoute "schoolku_backend/internals/features/school/schools/route"
	studentRoute "schoolku_backend/internals/features/school/students/route"
	teamupRoute "schoolku_backend/internals/features/school/teamups/route"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	authService "schoolku_backend/internals/features/users/auth/service"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

/* =========================
   SetupRoutes — tiga lapis:
   /api/public : tanpa token (register/login/refresh, health)
   /api/u      : token valid (siswa & semua role)
   /api/a      : token valid + role guard per fitur
========================= */
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// ---------- Public ----------
	public := api.Group("/public")
	BaseRoutes(public, db)
	authRoute.AuthPublicRoutes(public, db)

	// ---------- Authed ----------
	svc := authService.NewAuthService(db)
	authMW := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		BlacklistChecker:    svc.IsBlacklisted,
		AllowCookieFallback: true,
	})

	// /api/u — jalur user (siswa)
	u := api.Group("/u", authMW)
	authRoute.AuthUserRoutes(u, db)
	attendanceRoute.AttendanceUserRoutes(u, db)
	teamupRoute.TeamUpUserRoutes(u, db)

	// /api/a — jalur pengelola (role guard di masing-masing fitur)
	a := api.Group("/a", authMW)
	attendanceRoute.AttendanceAdminRoutes(a, db)
	schoolRoute.SchoolAdminRoutes(a, db)
	classRoute.ClassAdminRoutes(a, db)
	scheduleRoute.ClassScheduleAdminRoutes(a, db)
	studentRoute.StudentAdminRoutes(a, db)
}
