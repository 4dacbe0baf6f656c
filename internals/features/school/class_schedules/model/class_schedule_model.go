// file: internals/features/school/class_schedules/model/class_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   Enum status jadwal
   ======================================================= */

type ScheduleStatus string

const (
	ScheduleActive   ScheduleStatus = "active"
	ScheduleInactive ScheduleStatus = "inactive"
)

/* =======================================================
   ClassScheduleModel — map ke tabel class_schedules

   day_of_week disimpan sebagai teks lowercase ("monday".."sunday").
   Baris dengan teks yang tidak dikenal tidak akan pernah ter-match
   oleh resolver — ekuivalen "tidak ada jadwal aktif".
   ======================================================= */

type ClassScheduleModel struct {
	// PK
	ClassScheduleID uuid.UUID `json:"class_schedule_id" gorm:"column:class_schedule_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ClassScheduleClassID uuid.UUID `json:"class_schedule_class_id" gorm:"column:class_schedule_class_id;type:uuid;not null;index:idx_class_schedules_class_day,priority:1"`

	ClassScheduleDayOfWeek string `json:"class_schedule_day_of_week" gorm:"column:class_schedule_day_of_week;type:varchar(10);not null;index:idx_class_schedules_class_day,priority:2"`

	// Wall-clock "HH:MM:SS", presisi menit
	ClassScheduleStartTime string `json:"class_schedule_start_time" gorm:"column:class_schedule_start_time;type:time;not null"`
	ClassScheduleEndTime   string `json:"class_schedule_end_time" gorm:"column:class_schedule_end_time;type:time;not null"`

	ClassScheduleStatus ScheduleStatus `json:"class_schedule_status" gorm:"column:class_schedule_status;type:varchar(20);not null;default:'active'"`

	// Audit
	ClassScheduleCreatedAt time.Time      `json:"class_schedule_created_at" gorm:"column:class_schedule_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassScheduleUpdatedAt time.Time      `json:"class_schedule_updated_at" gorm:"column:class_schedule_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassScheduleDeletedAt gorm.DeletedAt `json:"class_schedule_deleted_at,omitempty" gorm:"column:class_schedule_deleted_at;index"`
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }
