// file: internals/features/school/teamups/model/teamup_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   TeamUp — konfirmasi co-presence antar teman sekelas.
   Satu baris = satu konfirmasi "saya satu sesi dengan X".
========================= */

type TeamUpModel struct {
	TeamUpID uuid.UUID `gorm:"column:team_up_id;type:uuid;default:gen_random_uuid();primaryKey" json:"team_up_id"`

	TeamUpClassID            uuid.UUID `gorm:"column:team_up_class_id;type:uuid;not null;index" json:"team_up_class_id"`
	TeamUpInitiatorStudentID uuid.UUID `gorm:"column:team_up_initiator_student_id;type:uuid;not null;index" json:"team_up_initiator_student_id"`
	TeamUpTeammateStudentID  uuid.UUID `gorm:"column:team_up_teammate_student_id;type:uuid;not null;index" json:"team_up_teammate_student_id"`

	TeamUpConfirmedAt time.Time `gorm:"column:team_up_confirmed_at;not null" json:"team_up_confirmed_at"`

	// Metadata bebas (device, catatan sesi, dsb)
	TeamUpMeta datatypes.JSONMap `gorm:"column:team_up_meta;type:jsonb" json:"team_up_meta,omitempty"`

	TeamUpCreatedAt time.Time      `gorm:"column:team_up_created_at;autoCreateTime" json:"team_up_created_at"`
	TeamUpUpdatedAt time.Time      `gorm:"column:team_up_updated_at;autoUpdateTime" json:"team_up_updated_at"`
	TeamUpDeletedAt gorm.DeletedAt `gorm:"column:team_up_deleted_at;index" json:"-"`
}

func (TeamUpModel) TableName() string {
	return "team_ups"
}
