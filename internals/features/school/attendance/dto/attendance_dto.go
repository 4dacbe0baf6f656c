// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/school/attendance/model"
)

/* ===================== REQUESTS ===================== */

// Manual mark (jalur override otoritatif)
type ManualMarkRequest struct {
	StudentID uuid.UUID              `json:"student_id" validate:"required"`
	ClassID   uuid.UUID              `json:"class_id" validate:"required"`
	Date      string                 `json:"date" validate:"required,datetime=2006-01-02"`
	Status    model.AttendanceStatus `json:"status" validate:"required,oneof=present late absent excused"`
	Notes     *string                `json:"notes" validate:"omitempty,max=500"`
}

/* ===================== RESPONSES ===================== */

type AttendanceRecordResponse struct {
	AttendanceRecordID            uuid.UUID              `json:"attendance_record_id"`
	AttendanceRecordStudentID     uuid.UUID              `json:"attendance_record_student_id"`
	AttendanceRecordClassID       uuid.UUID              `json:"attendance_record_class_id"`
	AttendanceRecordCourseLevelID *uuid.UUID             `json:"attendance_record_course_level_id,omitempty"`
	AttendanceRecordDate          string                 `json:"attendance_record_date"`
	AttendanceRecordStatus        model.AttendanceStatus `json:"attendance_record_status"`
	AttendanceRecordLoginAt       *time.Time             `json:"attendance_record_login_timestamp,omitempty"`
	AttendanceRecordMarkedBy      *uuid.UUID             `json:"attendance_record_marked_by,omitempty"`
	AttendanceRecordNotes         *string                `json:"attendance_record_notes,omitempty"`
	AttendanceRecordCreatedAt     time.Time              `json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt     time.Time              `json:"attendance_record_updated_at"`
}

func FromAttendanceRecordModel(m model.AttendanceRecordModel) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		AttendanceRecordID:            m.AttendanceRecordID,
		AttendanceRecordStudentID:     m.AttendanceRecordStudentID,
		AttendanceRecordClassID:       m.AttendanceRecordClassID,
		AttendanceRecordCourseLevelID: m.AttendanceRecordCourseLevelID,
		AttendanceRecordDate:          m.AttendanceRecordDate.Format("2006-01-02"),
		AttendanceRecordStatus:        m.AttendanceRecordStatus,
		AttendanceRecordLoginAt:       m.AttendanceRecordLoginTimestamp,
		AttendanceRecordMarkedBy:      m.AttendanceRecordMarkedBy,
		AttendanceRecordNotes:         m.AttendanceRecordNotes,
		AttendanceRecordCreatedAt:     m.AttendanceRecordCreatedAt,
		AttendanceRecordUpdatedAt:     m.AttendanceRecordUpdatedAt,
	}
}

/* ===================== REGISTER ===================== */

type RegisterDateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Attendance map: tanggal → status; nil berarti "tidak ada record"
// (beda makna dengan "absent").
type RegisterEntry struct {
	StudentID     uuid.UUID                         `json:"student_id"`
	StudentName   string                            `json:"student_name"`
	StudentNumber string                            `json:"student_number"`
	Attendance    map[string]*model.AttendanceStatus `json:"attendance"`
}

type RegisterSummary struct {
	TotalStudents  int     `json:"total_students"`
	TotalDays      int     `json:"total_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type AttendanceRegisterResponse struct {
	ClassID         uuid.UUID         `json:"class_id"`
	ClassName       string            `json:"class_name"`
	SchoolID        uuid.UUID         `json:"school_id"`
	SchoolName      string            `json:"school_name"`
	LeadTutor       *string           `json:"lead_tutor,omitempty"`
	AssistantTutor  *string           `json:"assistant_tutor,omitempty"`
	CourseLevelID   *uuid.UUID        `json:"course_level_id,omitempty"`
	CourseLevelName *string           `json:"course_level_name,omitempty"`
	DateRange       RegisterDateRange `json:"date_range"`
	Dates           []string          `json:"dates"`
	Entries         []RegisterEntry   `json:"entries"`
	Summary         RegisterSummary   `json:"summary"`
}
