// file: internals/features/school/teamups/controller/teamup_controller.go
package controller

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	attService "schoolku_backend/internals/features/school/attendance/service"
	studentModel "schoolku_backend/internals/features/school/students/model"
	dto "schoolku_backend/internals/features/school/teamups/dto"
	model "schoolku_backend/internals/features/school/teamups/model"
	helper "schoolku_backend/internals/helpers"
)

type TeamUpController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Marker   *attService.Marker
}

func NewTeamUpController(db *gorm.DB) *TeamUpController {
	loc, err := time.LoadLocation(configs.AttendanceTZ)
	if err != nil {
		loc = time.UTC
	}
	return &TeamUpController{
		DB:       db,
		Validate: validator.New(),
		Marker:   attService.NewMarker(attService.NewGormStore(db), loc),
	}
}

/* =========================
   POST /teamups/confirm
   Konfirmasi "saya satu sesi dengan X". Keduanya harus teman sekelas
   aktif. Setelah tercatat, kedua siswa di-mark present untuk hari ini
   lewat jalur sesi (fire-and-forget — gagal mark tidak membatalkan
   konfirmasi).
========================= */
func (ctl *TeamUpController) ConfirmTeamUp(c *fiber.Ctx) error {
	initiatorID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ConfirmTeamUpRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.TeammateStudentID == initiatorID {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa konfirmasi diri sendiri")
	}

	// Keduanya harus siswa aktif di kelas yang sama
	var pair []studentModel.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("student_id IN ? AND student_status = ?",
			[]uuid.UUID{initiatorID, req.TeammateStudentID}, studentModel.StudentActive).
		Find(&pair).Error; err != nil {
		log.Printf("[TEAMUP] ❌ lookup siswa gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memverifikasi siswa")
	}
	if len(pair) != 2 {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan atau tidak aktif")
	}
	if pair[0].StudentClassID == nil || pair[1].StudentClassID == nil ||
		*pair[0].StudentClassID != *pair[1].StudentClassID {
		return helper.JsonError(c, fiber.StatusForbidden, "Konfirmasi hanya berlaku antar teman sekelas")
	}
	classID := *pair[0].StudentClassID

	now := time.Now()
	teamup := model.TeamUpModel{
		TeamUpClassID:            classID,
		TeamUpInitiatorStudentID: initiatorID,
		TeamUpTeammateStudentID:  req.TeammateStudentID,
		TeamUpConfirmedAt:        now,
	}
	if len(req.Meta) > 0 {
		teamup.TeamUpMeta = datatypes.JSONMap(req.Meta)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&teamup).Error; err != nil {
		log.Printf("[TEAMUP] ❌ simpan konfirmasi gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan konfirmasi")
	}

	// Mark kedua siswa — di luar request lifecycle, error cukup dicatat
	go func(a, b uuid.UUID, at time.Time) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, sid := range []uuid.UUID{a, b} {
			if _, err := ctl.Marker.MarkPresentForSession(ctx, sid, at); err != nil {
				log.Printf("[TEAMUP] ⚠️ session-mark siswa %s gagal: %v", sid, err)
			}
		}
	}(initiatorID, req.TeammateStudentID, now)

	return helper.JsonCreated(c, "Konfirmasi tercatat", dto.FromTeamUpModel(teamup))
}

/* =========================
   GET /teamups/me
   Riwayat konfirmasi milik siswa (sebagai inisiator atau teammate)
========================= */
func (ctl *TeamUpController) GetMyTeamUps(c *fiber.Ctx) error {
	studentID, err := helper.GetStudentIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).
		Model(&model.TeamUpModel{}).
		Where("team_up_initiator_student_id = ? OR team_up_teammate_student_id = ?", studentID, studentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[TEAMUP] ❌ hitung riwayat gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat")
	}

	var rows []model.TeamUpModel
	if err := q.
		Order("team_up_confirmed_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		log.Printf("[TEAMUP] ❌ ambil riwayat gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat")
	}

	resp := make([]dto.TeamUpResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromTeamUpModel(rows[i]))
	}

	return helper.JsonList(c, "Riwayat konfirmasi", resp,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
