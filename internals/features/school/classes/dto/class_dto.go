// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/classes/model"
)

/* ===================== REQUESTS ===================== */

type CreateClassRequest struct {
	ClassSchoolID uuid.UUID `json:"class_school_id" validate:"required"`
	ClassName     string    `json:"class_name" validate:"required,min=2,max=120"`
	ClassSlug     string    `json:"class_slug" validate:"required,min=2,max=120,lowercase"`
}

type UpdateClassRequest struct {
	ClassName     *string `json:"class_name" validate:"omitempty,min=2,max=120"`
	ClassIsActive *bool   `json:"class_is_active"`
}

type CreateCourseLevelRequest struct {
	CourseLevelName  string `json:"course_level_name" validate:"required,min=2,max=120"`
	CourseLevelOrder int    `json:"course_level_order" validate:"gte=0"`
}

// Enroll kelas ke sebuah level; assignment "enrolled" lama ditandai completed.
type AssignCourseLevelRequest struct {
	CourseLevelID uuid.UUID `json:"course_level_id" validate:"required"`
}

type AssignTutorRequest struct {
	UserID    uuid.UUID       `json:"user_id" validate:"required"`
	TutorName string          `json:"tutor_name" validate:"required,min=2,max=120"`
	Role      model.TutorRole `json:"role" validate:"required,oneof=lead assistant"`
}

/* ===================== RESPONSES ===================== */

type ClassResponse struct {
	ClassID       uuid.UUID `json:"class_id"`
	ClassSchoolID uuid.UUID `json:"class_school_id"`
	ClassName     string    `json:"class_name"`
	ClassSlug     string    `json:"class_slug"`
	ClassIsActive bool      `json:"class_is_active"`
	ClassCreated  time.Time `json:"class_created_at"`
}

func FromClassModel(m model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:       m.ClassID,
		ClassSchoolID: m.ClassSchoolID,
		ClassName:     m.ClassName,
		ClassSlug:     m.ClassSlug,
		ClassIsActive: m.ClassIsActive,
		ClassCreated:  m.ClassCreatedAt,
	}
}
