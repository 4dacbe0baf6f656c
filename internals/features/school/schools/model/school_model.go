// file: internals/features/school/schools/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolModel struct {
	// PK
	SchoolID uuid.UUID `json:"school_id" gorm:"column:school_id;type:uuid;default:gen_random_uuid();primaryKey"`

	SchoolName    string  `json:"school_name" gorm:"column:school_name;type:varchar(120);not null"`
	SchoolSlug    string  `json:"school_slug" gorm:"column:school_slug;type:varchar(120);not null;uniqueIndex:uq_schools_slug"`
	SchoolAddress *string `json:"school_address,omitempty" gorm:"column:school_address;type:text"`

	SchoolIsActive bool `json:"school_is_active" gorm:"column:school_is_active;not null;default:true"`

	// Audit
	SchoolCreatedAt time.Time      `json:"school_created_at" gorm:"column:school_created_at;type:timestamptz;not null;autoCreateTime"`
	SchoolUpdatedAt time.Time      `json:"school_updated_at" gorm:"column:school_updated_at;type:timestamptz;not null;autoUpdateTime"`
	SchoolDeletedAt gorm.DeletedAt `json:"school_deleted_at,omitempty" gorm:"column:school_deleted_at;index"`
}

func (SchoolModel) TableName() string { return "schools" }
