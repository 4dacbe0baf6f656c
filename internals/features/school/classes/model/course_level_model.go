// file: internals/features/school/classes/model/course_level_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =======================================================
   CourseLevelModel — jenjang materi (mis. "Level 1", "Tahsin A")
   ======================================================= */

type CourseLevelModel struct {
	CourseLevelID    uuid.UUID `json:"course_level_id" gorm:"column:course_level_id;type:uuid;default:gen_random_uuid();primaryKey"`
	CourseLevelName  string    `json:"course_level_name" gorm:"column:course_level_name;type:varchar(120);not null"`
	CourseLevelOrder int       `json:"course_level_order" gorm:"column:course_level_order;not null;default:0"`

	CourseLevelCreatedAt time.Time `json:"course_level_created_at" gorm:"column:course_level_created_at;type:timestamptz;not null;autoCreateTime"`
	CourseLevelUpdatedAt time.Time `json:"course_level_updated_at" gorm:"column:course_level_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (CourseLevelModel) TableName() string { return "course_levels" }

/* =======================================================
   Enrollment status enum untuk assignment kelas ↔ level
   ======================================================= */

type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "enrolled"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

type ClassCourseLevelAssignmentModel struct {
	ClassCourseLevelAssignmentID uuid.UUID `json:"class_course_level_assignment_id" gorm:"column:class_course_level_assignment_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ClassCourseLevelAssignmentClassID       uuid.UUID `json:"class_course_level_assignment_class_id" gorm:"column:class_course_level_assignment_class_id;type:uuid;not null;index:idx_ccla_class_status,priority:1"`
	ClassCourseLevelAssignmentCourseLevelID uuid.UUID `json:"class_course_level_assignment_course_level_id" gorm:"column:class_course_level_assignment_course_level_id;type:uuid;not null"`

	ClassCourseLevelAssignmentEnrollmentStatus EnrollmentStatus `json:"class_course_level_assignment_enrollment_status" gorm:"column:class_course_level_assignment_enrollment_status;type:varchar(20);not null;default:'enrolled';index:idx_ccla_class_status,priority:2"`

	ClassCourseLevelAssignmentCreatedAt time.Time `json:"class_course_level_assignment_created_at" gorm:"column:class_course_level_assignment_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassCourseLevelAssignmentUpdatedAt time.Time `json:"class_course_level_assignment_updated_at" gorm:"column:class_course_level_assignment_updated_at;type:timestamptz;not null;autoUpdateTime"`
}

func (ClassCourseLevelAssignmentModel) TableName() string {
	return "class_course_level_assignments"
}
