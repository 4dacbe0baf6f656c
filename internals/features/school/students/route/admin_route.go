// file: internals/features/school/students/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	studentController "schoolku_backend/internals/features/school/students/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// StudentAdminRoutes: CRUD siswa, tutor ke atas.
func StudentAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)

	grp := api.Group("/students",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTutor("data siswa"),
			constants.TutorAndAbove,
		),
	)

	grp.Post("/", ctl.Create)
	grp.Get("/", ctl.List)
	grp.Get("/:id", ctl.GetByID)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
