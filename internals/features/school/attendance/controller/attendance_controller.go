// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	dto "schoolku_backend/internals/features/school/attendance/dto"
	attModel "schoolku_backend/internals/features/school/attendance/model"
	"schoolku_backend/internals/features/school/attendance/service"
	helper "schoolku_backend/internals/helpers"
)

type AttendanceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Marker   *service.Marker
	Register *service.RegisterBuilder
	Loc      *time.Location
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	loc, err := time.LoadLocation(configs.AttendanceTZ)
	if err != nil {
		log.Printf("[ATTENDANCE] ⚠️ timezone %q tidak dikenal, fallback UTC: %v", configs.AttendanceTZ, err)
		loc = time.UTC
	}
	store := service.NewGormStore(db)
	return &AttendanceController{
		DB:       db,
		Validate: validator.New(),
		Marker:   service.NewMarker(store, loc),
		Register: service.NewRegisterBuilder(store, service.NewSweeper(store, loc)),
		Loc:      loc,
	}
}

/* =========================
   POST /attendance/mark
   Manual mark oleh tutor/admin (override otoritatif)
========================= */
func (ctl *AttendanceController) MarkManually(c *fiber.Ctx) error {
	markedBy, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ManualMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format tanggal harus YYYY-MM-DD")
	}

	rec, err := ctl.Marker.MarkManually(c.UserContext(), service.ManualMark{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Date:      date,
		Status:    req.Status,
		Notes:     req.Notes,
		MarkedBy:  markedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		case errors.Is(err, service.ErrClassNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		case errors.Is(err, service.ErrInvalidStatus):
			return helper.JsonError(c, fiber.StatusBadRequest, "Status kehadiran tidak valid")
		}
		log.Printf("[ATTENDANCE] ❌ manual mark gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
	}

	return helper.JsonCreated(c, "Kehadiran berhasil dicatat", dto.FromAttendanceRecordModel(*rec))
}

/* =========================
   GET /attendance/classes/:class_id/register
   Register kelas (matriks siswa × tanggal + ringkasan)
========================= */
func (ctl *AttendanceController) GetClassRegister(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	rng, err := parseRangeQuery(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var filter service.RegisterFilter
	if v := c.Query("student_id"); v != "" {
		id, perr := uuid.Parse(v)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		filter.StudentID = &id
	}
	if v := c.Query("course_level_id"); v != "" {
		id, perr := uuid.Parse(v)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_level_id tidak valid")
		}
		filter.CourseLevelID = &id
	}

	resp, err := ctl.Register.BuildRegister(c.UserContext(), classID, rng, filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		case errors.Is(err, service.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak terdaftar di kelas ini")
		}
		log.Printf("[ATTENDANCE] ❌ build register gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membangun register")
	}

	return helper.JsonOK(c, "Register kehadiran", resp)
}

/* =========================
   GET /attendance/me/register
   Register versi siswa: satu baris, kelas diambil dari token
========================= */
func (ctl *AttendanceController) GetMyRegister(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	student, err := ctl.Marker.Store.FindStudent(c.UserContext(), studentID)
	if err != nil {
		log.Printf("[ATTENDANCE] ❌ resolve siswa gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}
	if student == nil || student.StudentClassID == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa belum tergabung di kelas mana pun")
	}

	rng, err := parseRangeQuery(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := ctl.Register.BuildRegister(c.UserContext(), *student.StudentClassID, rng, service.RegisterFilter{
		StudentID: &studentID,
	})
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) || errors.Is(err, service.ErrStudentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Data kelas siswa tidak ditemukan")
		}
		log.Printf("[ATTENDANCE] ❌ build register siswa gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membangun register")
	}

	return helper.JsonOK(c, "Register kehadiran saya", resp)
}

/* =========================
   GET /attendance/classes/:class_id/stats
   Ringkasan KPI: hitungan per status via satu query GROUP BY
========================= */
func (ctl *AttendanceController) GetClassStats(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	rng, err := parseRangeQuery(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rows []struct {
		Status attModel.AttendanceStatus `gorm:"column:attendance_record_status"`
		Total  int64                     `gorm:"column:total"`
	}
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&attModel.AttendanceRecordModel{}).
		Select("attendance_record_status, COUNT(*) AS total").
		Where("attendance_record_class_id = ? AND attendance_record_date BETWEEN ? AND ?",
			classID, rng.From, rng.To).
		Group("attendance_record_status").
		Scan(&rows).Error; err != nil {
		log.Printf("[ATTENDANCE] ❌ query stats gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}

	counts := map[attModel.AttendanceStatus]int64{}
	var total, presentish int64
	for _, r := range rows {
		counts[r.Status] = r.Total
		total += r.Total
		if r.Status.CountsAsPresent() {
			presentish += r.Total
		}
	}

	var rate float64
	if total > 0 {
		rate = float64(presentish) / float64(total) * 100
	}

	return helper.JsonOK(c, "Statistik kehadiran kelas", fiber.Map{
		"class_id":        classID,
		"start_date":      rng.From.Format("2006-01-02"),
		"end_date":        rng.To.Format("2006-01-02"),
		"total_records":   total,
		"present":         counts[attModel.AttendancePresent],
		"late":            counts[attModel.AttendanceLate],
		"absent":          counts[attModel.AttendanceAbsent],
		"excused":         counts[attModel.AttendanceExcused],
		"attendance_rate": rate,
	})
}

// parseRangeQuery membaca ?start_date & ?end_date (wajib, YYYY-MM-DD).
func parseRangeQuery(c *fiber.Ctx) (service.DateRange, error) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		return service.DateRange{}, errors.New("start_date dan end_date wajib diisi (YYYY-MM-DD)")
	}
	rng, err := service.ParseDateRange(start, end)
	if err != nil {
		return service.DateRange{}, errors.New("Format tanggal harus YYYY-MM-DD")
	}
	if rng.To.Before(rng.From) {
		return service.DateRange{}, errors.New("end_date tidak boleh sebelum start_date")
	}
	return rng, nil
}
