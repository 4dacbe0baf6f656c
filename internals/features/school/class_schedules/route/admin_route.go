// file: internals/features/school/class_schedules/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	scheduleController "schoolku_backend/internals/features/school/class_schedules/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// ClassScheduleAdminRoutes: CRUD jadwal kelas, tutor ke atas.
func ClassScheduleAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := scheduleController.NewClassScheduleController(db)

	grp := api.Group("/class-schedules",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTutor("jadwal kelas"),
			constants.TutorAndAbove,
		),
	)

	grp.Post("/", ctl.Create)
	grp.Get("/", ctl.List)
	grp.Patch("/:id", ctl.Update)
	grp.Delete("/:id", ctl.Delete)
}
