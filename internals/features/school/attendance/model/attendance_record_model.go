// file: internals/features/school/attendance/model/attendance_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =======================================================
   Enum status kehadiran
   ======================================================= */

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// CountsAsPresent: present & late dihitung hadir pada attendance_rate.
func (s AttendanceStatus) CountsAsPresent() bool {
	return s == AttendancePresent || s == AttendanceLate
}

/* =======================================================
   AttendanceRecordModel — map ke tabel attendance_records

   Maks. satu record per (student, class, course_level, date).
   Unique index di DB adalah penjaga kebenarannya; writer
   paralel WAJIB memperlakukan konflik insert sebagai
   "sudah tercatat", bukan error. Index dibuat dengan
   NULLS NOT DISTINCT supaya course_level_id NULL tetap
   terkena constraint (lihat migration).
   ======================================================= */

type AttendanceRecordModel struct {
	// PK
	AttendanceRecordID uuid.UUID `json:"attendance_record_id" gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey"`

	AttendanceRecordStudentID     uuid.UUID  `json:"attendance_record_student_id" gorm:"column:attendance_record_student_id;type:uuid;not null;uniqueIndex:uq_attendance_student_class_level_date,priority:1"`
	AttendanceRecordClassID       uuid.UUID  `json:"attendance_record_class_id" gorm:"column:attendance_record_class_id;type:uuid;not null;uniqueIndex:uq_attendance_student_class_level_date,priority:2;index:idx_attendance_class_date,priority:1"`
	AttendanceRecordCourseLevelID *uuid.UUID `json:"attendance_record_course_level_id,omitempty" gorm:"column:attendance_record_course_level_id;type:uuid;uniqueIndex:uq_attendance_student_class_level_date,priority:3"`

	// Kunci temporal record (hari kalender)
	AttendanceRecordDate time.Time `json:"attendance_record_date" gorm:"column:attendance_record_date;type:date;not null;uniqueIndex:uq_attendance_student_class_level_date,priority:4;index:idx_attendance_class_date,priority:2"`

	AttendanceRecordStatus AttendanceStatus `json:"attendance_record_status" gorm:"column:attendance_record_status;type:varchar(10);not null"`

	// Hanya terisi untuk record hasil login
	AttendanceRecordLoginTimestamp *time.Time `json:"attendance_record_login_timestamp,omitempty" gorm:"column:attendance_record_login_timestamp;type:timestamptz"`

	// Hanya terisi untuk record manual (user_id penanda)
	AttendanceRecordMarkedBy *uuid.UUID `json:"attendance_record_marked_by,omitempty" gorm:"column:attendance_record_marked_by;type:uuid"`

	AttendanceRecordNotes *string `json:"attendance_record_notes,omitempty" gorm:"column:attendance_record_notes;type:text"`

	// Audit
	AttendanceRecordCreatedAt time.Time `json:"attendance_record_created_at" gorm:"column:attendance_record_created_at;type:timestamptz;not null;autoCreateTime"`
	AttendanceRecordUpdatedAt time.Time `json:"attendance_record_updated_at" gorm:"column:attendance_record_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
