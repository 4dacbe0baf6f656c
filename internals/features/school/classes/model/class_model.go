// file: internals/features/school/classes/model/class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	// PK
	ClassID uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Tenant / scope
	ClassSchoolID uuid.UUID `json:"class_school_id" gorm:"column:class_school_id;type:uuid;not null;index:idx_classes_school"`

	ClassName string `json:"class_name" gorm:"column:class_name;type:varchar(120);not null"`
	ClassSlug string `json:"class_slug" gorm:"column:class_slug;type:varchar(120);not null;uniqueIndex:uq_classes_school_slug,priority:2"`

	ClassIsActive bool `json:"class_is_active" gorm:"column:class_is_active;not null;default:true"`

	// Audit
	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }
