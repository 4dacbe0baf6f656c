// file: internals/features/school/class_schedules/controller/class_schedule_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attService "schoolku_backend/internals/features/school/attendance/service"
	dto "schoolku_backend/internals/features/school/class_schedules/dto"
	model "schoolku_backend/internals/features/school/class_schedules/model"
	helper "schoolku_backend/internals/helpers"
)

type ClassScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClassScheduleController(db *gorm.DB) *ClassScheduleController {
	return &ClassScheduleController{DB: db, Validate: validator.New()}
}

// Jam harus bisa diparse sebelum masuk DB — jadwal dengan jam rusak
// diperlakukan resolver sebagai "tidak ada jadwal".
func validateClock(start, end string) error {
	if _, err := attService.ParseClockMinutes(start); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "start_time harus berformat HH:MM atau HH:MM:SS")
	}
	if _, err := attService.ParseClockMinutes(end); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "end_time harus berformat HH:MM atau HH:MM:SS")
	}
	return nil
}

// POST /class-schedules
func (ctl *ClassScheduleController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := validateClock(req.StartTime, req.EndTime); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	sched := model.ClassScheduleModel{
		ClassScheduleClassID:   req.ClassID,
		ClassScheduleDayOfWeek: strings.ToLower(req.DayOfWeek),
		ClassScheduleStartTime: req.StartTime,
		ClassScheduleEndTime:   req.EndTime,
		ClassScheduleStatus:    model.ScheduleActive,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&sched).Error; err != nil {
		log.Printf("[SCHEDULE] ❌ create gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat jadwal")
	}

	return helper.JsonCreated(c, "Jadwal berhasil dibuat", dto.FromClassScheduleModel(sched))
}

// GET /class-schedules?class_id=
func (ctl *ClassScheduleController) List(c *fiber.Ctx) error {
	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassScheduleModel{})
	if v := c.Query("class_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
		}
		q = q.Where("class_schedule_class_id = ?", id)
	}

	var rows []model.ClassScheduleModel
	if err := q.Order("class_schedule_day_of_week ASC, class_schedule_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	resp := make([]dto.ClassScheduleResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromClassScheduleModel(rows[i]))
	}
	return helper.JsonOK(c, "Daftar jadwal", resp)
}

// PATCH /class-schedules/:id
func (ctl *ClassScheduleController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	updates := map[string]any{}
	if req.DayOfWeek != nil {
		updates["class_schedule_day_of_week"] = strings.ToLower(*req.DayOfWeek)
	}
	if req.StartTime != nil {
		if _, perr := attService.ParseClockMinutes(*req.StartTime); perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "start_time harus berformat HH:MM atau HH:MM:SS")
		}
		updates["class_schedule_start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		if _, perr := attService.ParseClockMinutes(*req.EndTime); perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "end_time harus berformat HH:MM atau HH:MM:SS")
		}
		updates["class_schedule_end_time"] = *req.EndTime
	}
	if req.Status != nil {
		updates["class_schedule_status"] = *req.Status
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Model(&model.ClassScheduleModel{}).
		Where("class_schedule_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		log.Printf("[SCHEDULE] ❌ update gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui jadwal")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Jadwal tidak ditemukan")
	}

	var sched model.ClassScheduleModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("class_schedule_id = ?", id).
		Take(&sched).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonUpdated(c, "Jadwal diperbarui", dto.FromClassScheduleModel(sched))
}

// DELETE /class-schedules/:id (soft delete)
func (ctl *ClassScheduleController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := ctl.DB.WithContext(c.UserContext()).
		Where("class_schedule_id = ?", id).
		Delete(&model.ClassScheduleModel{})
	if res.Error != nil {
		log.Printf("[SCHEDULE] ❌ delete gagal: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus jadwal")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Jadwal tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Jadwal dihapus", fiber.Map{"class_schedule_id": id})
}
