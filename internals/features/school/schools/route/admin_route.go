// file: internals/features/school/schools/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	schoolController "schoolku_backend/internals/features/school/schools/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// SchoolAdminRoutes: CRUD sekolah, khusus admin/owner.
func SchoolAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := schoolController.NewSchoolController(db)

	grp := api.Group("/schools",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("sekolah"),
			constants.AdminAndAbove,
		),
	)

	grp.Post("/", ctl.Create)
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
