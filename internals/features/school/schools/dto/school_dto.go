// file: internals/features/school/schools/dto/school_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/schools/model"
)

/* ===================== REQUESTS ===================== */

type CreateSchoolRequest struct {
	SchoolName    string  `json:"school_name" validate:"required,min=3,max=120"`
	SchoolSlug    string  `json:"school_slug" validate:"required,min=3,max=120,lowercase"`
	SchoolAddress *string `json:"school_address" validate:"omitempty,max=500"`
}

type UpdateSchoolRequest struct {
	SchoolName     *string `json:"school_name" validate:"omitempty,min=3,max=120"`
	SchoolAddress  *string `json:"school_address" validate:"omitempty,max=500"`
	SchoolIsActive *bool   `json:"school_is_active"`
}

/* ===================== RESPONSES ===================== */

type SchoolResponse struct {
	SchoolID       uuid.UUID `json:"school_id"`
	SchoolName     string    `json:"school_name"`
	SchoolSlug     string    `json:"school_slug"`
	SchoolAddress  *string   `json:"school_address,omitempty"`
	SchoolIsActive bool      `json:"school_is_active"`
	SchoolCreated  time.Time `json:"school_created_at"`
}

func FromSchoolModel(m model.SchoolModel) SchoolResponse {
	return SchoolResponse{
		SchoolID:       m.SchoolID,
		SchoolName:     m.SchoolName,
		SchoolSlug:     m.SchoolSlug,
		SchoolAddress:  m.SchoolAddress,
		SchoolIsActive: m.SchoolIsActive,
		SchoolCreated:  m.SchoolCreatedAt,
	}
}
