// file: internals/features/school/classes/controller/course_level_controller.go
package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/classes/dto"
	model "schoolku_backend/internals/features/school/classes/model"
	helper "schoolku_backend/internals/helpers"
)

type CourseLevelController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseLevelController(db *gorm.DB) *CourseLevelController {
	return &CourseLevelController{DB: db, Validate: validator.New()}
}

// POST /course-levels
func (ctl *CourseLevelController) Create(c *fiber.Ctx) error {
	var req dto.CreateCourseLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	level := model.CourseLevelModel{
		CourseLevelName:  strings.TrimSpace(req.CourseLevelName),
		CourseLevelOrder: req.CourseLevelOrder,
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(&level).Error; err != nil {
		log.Printf("[COURSE_LEVEL] ❌ create gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat level")
	}

	return helper.JsonCreated(c, "Level berhasil dibuat", level)
}

// GET /course-levels
func (ctl *CourseLevelController) List(c *fiber.Ctx) error {
	var rows []model.CourseLevelModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Order("course_level_order ASC, course_level_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "Daftar level", rows)
}

/* =========================
   POST /classes/:id/course-level
   Enroll kelas ke level baru. Assignment "enrolled" sebelumnya
   ditandai completed — satu kelas hanya punya satu level berjalan.
========================= */
func (ctl *CourseLevelController) AssignToClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	var req dto.AssignCourseLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var assignment model.ClassCourseLevelAssignmentModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ClassCourseLevelAssignmentModel{}).
			Where("class_course_level_assignment_class_id = ? AND class_course_level_assignment_enrollment_status = ?",
				classID, model.EnrollmentEnrolled).
			Updates(map[string]any{
				"class_course_level_assignment_enrollment_status": model.EnrollmentCompleted,
				"class_course_level_assignment_updated_at":        time.Now(),
			}).Error; err != nil {
			return err
		}

		assignment = model.ClassCourseLevelAssignmentModel{
			ClassCourseLevelAssignmentClassID:          classID,
			ClassCourseLevelAssignmentCourseLevelID:    req.CourseLevelID,
			ClassCourseLevelAssignmentEnrollmentStatus: model.EnrollmentEnrolled,
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		log.Printf("[COURSE_LEVEL] ❌ assign gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal meng-enroll level")
	}

	return helper.JsonCreated(c, "Kelas di-enroll ke level baru", assignment)
}

/* =========================
   POST /classes/:id/tutors
   Pasang tutor (lead/assistant). Assignment aktif dengan role sama
   dinonaktifkan dulu supaya header register tidak ambigu.
========================= */
func (ctl *CourseLevelController) AssignTutor(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id tidak valid")
	}

	var req dto.AssignTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var assignment model.TutorClassAssignmentModel
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.TutorClassAssignmentModel{}).
			Where("tutor_class_assignment_class_id = ? AND tutor_class_assignment_role = ? AND tutor_class_assignment_is_active = TRUE",
				classID, req.Role).
			Update("tutor_class_assignment_is_active", false).Error; err != nil {
			return err
		}

		assignment = model.TutorClassAssignmentModel{
			TutorClassAssignmentClassID:   classID,
			TutorClassAssignmentUserID:    req.UserID,
			TutorClassAssignmentTutorName: strings.TrimSpace(req.TutorName),
			TutorClassAssignmentRole:      req.Role,
			TutorClassAssignmentIsActive:  true,
		}
		return tx.Create(&assignment).Error
	})
	if err != nil {
		log.Printf("[COURSE_LEVEL] ❌ assign tutor gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memasang tutor")
	}

	return helper.JsonCreated(c, "Tutor terpasang", assignment)
}
