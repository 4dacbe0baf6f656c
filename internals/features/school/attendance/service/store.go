// file: internals/features/school/attendance/service/store.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	attModel "schoolku_backend/internals/features/school/attendance/model"
	schedModel "schoolku_backend/internals/features/school/class_schedules/model"
	schedService "schoolku_backend/internals/features/school/class_schedules/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

/* =========================
   Store — batas akses data inti absensi

   Semua lookup "to-one" dinormalkan menjadi satu nilai opsional
   (nil = tidak ditemukan); ambiguitas list-satu-elemen dari eager
   loading tidak boleh bocor ke business logic.
========================= */

type ClassHeader struct {
	ClassID         uuid.UUID
	ClassName       string
	SchoolID        uuid.UUID
	SchoolName      string
	LeadTutor       *string
	AssistantTutor  *string
	CourseLevelID   *uuid.UUID
	CourseLevelName *string
}

type Store interface {
	FindStudent(ctx context.Context, studentID uuid.UUID) (*studentModel.StudentModel, error)
	FindActiveStudentsByClass(ctx context.Context, classID uuid.UUID) ([]studentModel.StudentModel, error)

	FindActiveSchedule(ctx context.Context, classID uuid.UUID, day time.Weekday) (*schedModel.ClassScheduleModel, error)
	FindActiveSchedulesByClass(ctx context.Context, classID uuid.UUID) ([]schedModel.ClassScheduleModel, error)

	// course_level yang sedang di-enroll kelas; nil bila tidak ada
	CurrentCourseLevelID(ctx context.Context, classID uuid.UUID) (*uuid.UUID, error)

	FindRecordForDate(ctx context.Context, studentID, classID uuid.UUID, date time.Time) (*attModel.AttendanceRecordModel, error)
	FindLatestRecordBefore(ctx context.Context, studentID, classID uuid.UUID, date time.Time) (*attModel.AttendanceRecordModel, error)
	RefreshLoginTimestamp(ctx context.Context, recordID uuid.UUID, ts time.Time) error

	// InsertRecord: created=false saat kalah race (konflik unique) — bukan error
	InsertRecord(ctx context.Context, rec *attModel.AttendanceRecordModel) (bool, error)
	// UpsertRecord: jalur otoritatif; menimpa status/notes/marked_by/login_timestamp
	UpsertRecord(ctx context.Context, rec *attModel.AttendanceRecordModel) error

	RecordsForClassDate(ctx context.Context, classID uuid.UUID, date time.Time) ([]attModel.AttendanceRecordModel, error)
	DistinctRecordDates(ctx context.Context, classID uuid.UUID, from, to time.Time) ([]time.Time, error)
	RecordsForClassDates(ctx context.Context, classID uuid.UUID, dates []time.Time, courseLevelID, studentID *uuid.UUID) ([]attModel.AttendanceRecordModel, error)

	ClassHeader(ctx context.Context, classID uuid.UUID) (*ClassHeader, error)
}

/* =========================
   Implementasi GORM
========================= */

type gormStore struct {
	db       *gorm.DB
	resolver *schedService.Resolver
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db, resolver: schedService.NewResolver(db)}
}

func (s *gormStore) FindStudent(ctx context.Context, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	var st studentModel.StudentModel
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Limit(1).
		Take(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *gormStore) FindActiveStudentsByClass(ctx context.Context, classID uuid.UUID) ([]studentModel.StudentModel, error) {
	var students []studentModel.StudentModel
	if err := s.db.WithContext(ctx).
		Where("student_class_id = ? AND student_status = ?", classID, studentModel.StudentActive).
		Order("student_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *gormStore) FindActiveSchedule(ctx context.Context, classID uuid.UUID, day time.Weekday) (*schedModel.ClassScheduleModel, error) {
	return s.resolver.FindActiveByClassAndDay(ctx, classID, day)
}

func (s *gormStore) FindActiveSchedulesByClass(ctx context.Context, classID uuid.UUID) ([]schedModel.ClassScheduleModel, error) {
	return s.resolver.FindActiveByClass(ctx, classID)
}

func (s *gormStore) CurrentCourseLevelID(ctx context.Context, classID uuid.UUID) (*uuid.UUID, error) {
	var row struct {
		CourseLevelID uuid.UUID `gorm:"column:class_course_level_assignment_course_level_id"`
	}
	err := s.db.WithContext(ctx).
		Model(&classModel.ClassCourseLevelAssignmentModel{}).
		Select("class_course_level_assignment_course_level_id").
		Where("class_course_level_assignment_class_id = ? AND class_course_level_assignment_enrollment_status = ?",
			classID, classModel.EnrollmentEnrolled).
		Order("class_course_level_assignment_created_at DESC").
		Limit(1).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id := row.CourseLevelID
	return &id, nil
}

func (s *gormStore) FindRecordForDate(ctx context.Context, studentID, classID uuid.UUID, date time.Time) (*attModel.AttendanceRecordModel, error) {
	var rec attModel.AttendanceRecordModel
	err := s.db.WithContext(ctx).
		Where("attendance_record_student_id = ? AND attendance_record_class_id = ? AND attendance_record_date = ?",
			studentID, classID, date).
		Limit(1).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *gormStore) FindLatestRecordBefore(ctx context.Context, studentID, classID uuid.UUID, date time.Time) (*attModel.AttendanceRecordModel, error) {
	var rec attModel.AttendanceRecordModel
	err := s.db.WithContext(ctx).
		Where("attendance_record_student_id = ? AND attendance_record_class_id = ? AND attendance_record_date < ?",
			studentID, classID, date).
		Order("attendance_record_date DESC").
		Limit(1).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *gormStore) RefreshLoginTimestamp(ctx context.Context, recordID uuid.UUID, ts time.Time) error {
	return s.db.WithContext(ctx).
		Model(&attModel.AttendanceRecordModel{}).
		Where("attendance_record_id = ?", recordID).
		Update("attendance_record_login_timestamp", ts).Error
}

func (s *gormStore) InsertRecord(ctx context.Context, rec *attModel.AttendanceRecordModel) (bool, error) {
	err := s.db.WithContext(ctx).Create(rec).Error
	if err == nil {
		return true, nil
	}
	// Konflik unique (23505) = sudah tercatat oleh writer lain → no-op
	if isDuplicateKey(err) {
		return false, nil
	}
	return false, err
}

func (s *gormStore) UpsertRecord(ctx context.Context, rec *attModel.AttendanceRecordModel) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_student_id"},
				{Name: "attendance_record_class_id"},
				{Name: "attendance_record_course_level_id"},
				{Name: "attendance_record_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_status",
				"attendance_record_login_timestamp",
				"attendance_record_marked_by",
				"attendance_record_notes",
				"attendance_record_updated_at",
			}),
		}).
		Create(rec).Error
}

func (s *gormStore) RecordsForClassDate(ctx context.Context, classID uuid.UUID, date time.Time) ([]attModel.AttendanceRecordModel, error) {
	var recs []attModel.AttendanceRecordModel
	if err := s.db.WithContext(ctx).
		Where("attendance_record_class_id = ? AND attendance_record_date = ?", classID, date).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *gormStore) DistinctRecordDates(ctx context.Context, classID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	if err := s.db.WithContext(ctx).
		Model(&attModel.AttendanceRecordModel{}).
		Distinct("attendance_record_date").
		Where("attendance_record_class_id = ? AND attendance_record_date BETWEEN ? AND ?", classID, from, to).
		Order("attendance_record_date ASC").
		Pluck("attendance_record_date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (s *gormStore) RecordsForClassDates(ctx context.Context, classID uuid.UUID, dates []time.Time, courseLevelID, studentID *uuid.UUID) ([]attModel.AttendanceRecordModel, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	q := s.db.WithContext(ctx).
		Where("attendance_record_class_id = ?", classID).
		Where("attendance_record_date = ANY(?)", pq.Array(dates))
	if courseLevelID != nil {
		q = q.Where("attendance_record_course_level_id = ?", *courseLevelID)
	}
	if studentID != nil {
		q = q.Where("attendance_record_student_id = ?", *studentID)
	}

	var recs []attModel.AttendanceRecordModel
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *gormStore) ClassHeader(ctx context.Context, classID uuid.UUID) (*ClassHeader, error) {
	var row struct {
		ClassID    uuid.UUID `gorm:"column:class_id"`
		ClassName  string    `gorm:"column:class_name"`
		SchoolID   uuid.UUID `gorm:"column:school_id"`
		SchoolName string    `gorm:"column:school_name"`
	}
	err := s.db.WithContext(ctx).Raw(`
SELECT c.class_id, c.class_name, sc.school_id, sc.school_name
FROM classes c
JOIN schools sc ON sc.school_id = c.class_school_id
WHERE c.class_id = ? AND c.class_deleted_at IS NULL
LIMIT 1`, classID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ClassID == uuid.Nil {
		return nil, nil
	}

	header := &ClassHeader{
		ClassID:    row.ClassID,
		ClassName:  row.ClassName,
		SchoolID:   row.SchoolID,
		SchoolName: row.SchoolName,
	}

	// Tutor pembimbing (lead/assistant) — to-one per role, normalkan ke satu nilai
	var tutors []classModel.TutorClassAssignmentModel
	if err := s.db.WithContext(ctx).
		Where("tutor_class_assignment_class_id = ? AND tutor_class_assignment_is_active = TRUE", classID).
		Order("tutor_class_assignment_created_at DESC").
		Find(&tutors).Error; err != nil {
		return nil, err
	}
	for i := range tutors {
		t := tutors[i]
		switch t.TutorClassAssignmentRole {
		case classModel.TutorRoleLead:
			if header.LeadTutor == nil {
				name := t.TutorClassAssignmentTutorName
				header.LeadTutor = &name
			}
		case classModel.TutorRoleAssistant:
			if header.AssistantTutor == nil {
				name := t.TutorClassAssignmentTutorName
				header.AssistantTutor = &name
			}
		}
	}

	// Course level yang sedang di-enroll (nullable)
	levelID, err := s.CurrentCourseLevelID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if levelID != nil {
		header.CourseLevelID = levelID
		var lvl classModel.CourseLevelModel
		err := s.db.WithContext(ctx).
			Where("course_level_id = ?", *levelID).
			Limit(1).
			Take(&lvl).Error
		if err == nil {
			name := lvl.CourseLevelName
			header.CourseLevelName = &name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return header, nil
}

// isDuplicateKey: cek pelanggaran unique Postgres (SQLSTATE 23505).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
