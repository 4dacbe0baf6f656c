// file: internals/features/school/classes/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classController "schoolku_backend/internals/features/school/classes/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// ClassAdminRoutes: CRUD kelas + enroll level + pasang tutor.
func ClassAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := classController.NewClassController(db)
	levelCtl := classController.NewCourseLevelController(db)

	guard := authMiddleware.OnlyRolesSlice(
		constants.RoleErrorAdmin("kelas"),
		constants.AdminAndAbove,
	)

	classes := api.Group("/classes", guard)
	classes.Post("/", ctl.Create)
	classes.Get("/", ctl.List)
	classes.Get("/:id", ctl.GetByID)
	classes.Patch("/:id", ctl.Update)
	classes.Delete("/:id", ctl.Delete)
	classes.Post("/:id/course-level", levelCtl.AssignToClass)
	classes.Post("/:id/tutors", levelCtl.AssignTutor)

	levels := api.Group("/course-levels", guard)
	levels.Post("/", levelCtl.Create)
	levels.Get("/", levelCtl.List)
}
