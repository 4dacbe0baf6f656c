// file: internals/features/school/attendance/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "schoolku_backend/internals/features/school/attendance/controller"
)

// AttendanceUserRoutes: jalur siswa (lihat register sendiri).
func AttendanceUserRoutes(api fiber.Router, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	grp := api.Group("/attendance")
	grp.Get("/me/register", ctl.GetMyRegister)
}
