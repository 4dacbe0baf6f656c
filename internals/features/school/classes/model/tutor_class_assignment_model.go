// file: internals/features/school/classes/model/tutor_class_assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type TutorRole string

const (
	TutorRoleLead      TutorRole = "lead"
	TutorRoleAssistant TutorRole = "assistant"
)

type TutorClassAssignmentModel struct {
	TutorClassAssignmentID uuid.UUID `json:"tutor_class_assignment_id" gorm:"column:tutor_class_assignment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	TutorClassAssignmentClassID uuid.UUID `json:"tutor_class_assignment_class_id" gorm:"column:tutor_class_assignment_class_id;type:uuid;not null;index:idx_tca_class_role,priority:1"`
	TutorClassAssignmentUserID  uuid.UUID `json:"tutor_class_assignment_user_id" gorm:"column:tutor_class_assignment_user_id;type:uuid;not null"`

	// Nama di-snapshot supaya header register tidak perlu join ke users
	TutorClassAssignmentTutorName string    `json:"tutor_class_assignment_tutor_name" gorm:"column:tutor_class_assignment_tutor_name;type:varchar(120);not null"`
	TutorClassAssignmentRole      TutorRole `json:"tutor_class_assignment_role" gorm:"column:tutor_class_assignment_role;type:varchar(20);not null;index:idx_tca_class_role,priority:2"`

	TutorClassAssignmentIsActive bool `json:"tutor_class_assignment_is_active" gorm:"column:tutor_class_assignment_is_active;not null;default:true"`

	TutorClassAssignmentCreatedAt time.Time `json:"tutor_class_assignment_created_at" gorm:"column:tutor_class_assignment_created_at;type:timestamptz;not null;autoCreateTime"`
	TutorClassAssignmentUpdatedAt time.Time `json:"tutor_class_assignment_updated_at" gorm:"column:tutor_class_assignment_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (TutorClassAssignmentModel) TableName() string { return "tutor_class_assignments" }
