// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "schoolku_backend/internals/features/users/auth/controller"
	"schoolku_backend/internals/middlewares"
)

// AuthPublicRoutes: endpoint tanpa login (register/login/refresh).
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	grp := api.Group("/auth")
	grp.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	grp.Post("/refresh-token", ctl.RefreshToken)
}

// AuthUserRoutes: endpoint yang butuh access token valid.
func AuthUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	grp := api.Group("/auth")
	grp.Post("/logout", ctl.Logout)
	grp.Get("/me", ctl.Me)
}
