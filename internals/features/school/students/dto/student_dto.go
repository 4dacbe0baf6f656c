// file: internals/features/school/students/dto/student_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/students/model"
)

/* ===================== REQUESTS ===================== */

type CreateStudentRequest struct {
	StudentUserID  *uuid.UUID `json:"student_user_id"`
	StudentClassID *uuid.UUID `json:"student_class_id"`
	StudentNumber  string     `json:"student_number" validate:"required,min=3,max=40"`
	StudentName    string     `json:"student_name" validate:"required,min=2,max=120"`
}

type UpdateStudentRequest struct {
	StudentClassID *uuid.UUID           `json:"student_class_id"`
	StudentName    *string              `json:"student_name" validate:"omitempty,min=2,max=120"`
	StudentStatus  *model.StudentStatus `json:"student_status" validate:"omitempty,oneof=active inactive graduated"`
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	StudentID      uuid.UUID           `json:"student_id"`
	StudentUserID  *uuid.UUID          `json:"student_user_id,omitempty"`
	StudentClassID *uuid.UUID          `json:"student_class_id,omitempty"`
	StudentNumber  string              `json:"student_number"`
	StudentName    string              `json:"student_name"`
	StudentStatus  model.StudentStatus `json:"student_status"`
	StudentCreated time.Time           `json:"student_created_at"`
}

func FromStudentModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:      m.StudentID,
		StudentUserID:  m.StudentUserID,
		StudentClassID: m.StudentClassID,
		StudentNumber:  m.StudentNumber,
		StudentName:    m.StudentName,
		StudentStatus:  m.StudentStatus,
		StudentCreated: m.StudentCreatedAt,
	}
}
