// file: internals/features/school/teamups/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teamupController "schoolku_backend/internals/features/school/teamups/controller"
)

// TeamUpUserRoutes: konfirmasi co-presence oleh siswa.
func TeamUpUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := teamupController.NewTeamUpController(db)

	grp := api.Group("/teamups")
	grp.Post("/confirm", ctl.ConfirmTeamUp)
	grp.Get("/me", ctl.GetMyTeamUps)
}
