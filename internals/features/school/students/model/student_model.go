// file: internals/features/school/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentGraduated StudentStatus = "graduated"
)

type StudentModel struct {
	// PK
	StudentID uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey"`

	// Akun login (nullable untuk siswa yang belum punya akun)
	StudentUserID *uuid.UUID `json:"student_user_id,omitempty" gorm:"column:student_user_id;type:uuid;uniqueIndex:uq_students_user"`

	// Kelas pemilik (nullable hanya transien, saat mutasi kelas)
	StudentClassID *uuid.UUID `json:"student_class_id,omitempty" gorm:"column:student_class_id;type:uuid;index:idx_students_class_status,priority:1"`

	StudentNumber string `json:"student_number" gorm:"column:student_number;type:varchar(40);not null;uniqueIndex:uq_students_number"`
	StudentName   string `json:"student_name" gorm:"column:student_name;type:varchar(120);not null"`

	StudentStatus StudentStatus `json:"student_status" gorm:"column:student_status;type:varchar(20);not null;default:'active';index:idx_students_class_status,priority:2"`

	// Audit
	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;type:timestamptz;not null;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;type:timestamptz;not null;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"student_deleted_at,omitempty" gorm:"column:student_deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }
