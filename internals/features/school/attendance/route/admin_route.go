// file: internals/features/school/attendance/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	attendanceController "schoolku_backend/internals/features/school/attendance/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// AttendanceAdminRoutes: jalur tutor/admin (manual mark, register kelas, stats).
func AttendanceAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	grp := api.Group("/attendance",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTutor("kehadiran"),
			constants.TutorAndAbove,
		),
	)

	grp.Post("/mark", ctl.MarkManually)
	grp.Get("/classes/:class_id/register", ctl.GetClassRegister)
	grp.Get("/classes/:class_id/stats", ctl.GetClassStats)
}
