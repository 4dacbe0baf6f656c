// file: internals/features/school/attendance/service/marker.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	attModel "schoolku_backend/internals/features/school/attendance/model"
)

/* =========================
   Marker — penentu kehadiran

   Tiga jalur tulis:
   - MarkFromLogin        : dipicu login; window + cool-down + telat
   - MarkPresentForSession: konfirmasi rekan satu sesi; tanpa syarat
   - MarkManually         : override otoritatif oleh manusia

   Idempotensi adalah mekanisme recovery utama: mengulang operasi
   dengan kunci yang sama selalu aman dan konvergen.
========================= */

// Cool-down: auto-mark maksimal sekali per 7 hari berjalan per kelas.
const CoolDownDays = 7

var (
	ErrStudentNotFound = errors.New("student tidak ditemukan")
	ErrClassNotFound   = errors.New("kelas tidak ditemukan")
	ErrInvalidStatus   = errors.New("status kehadiran tidak valid")
)

type Marker struct {
	Store Store
	Loc   *time.Location
	Now   func() time.Time
}

func NewMarker(store Store, loc *time.Location) *Marker {
	if loc == nil {
		loc = time.UTC
	}
	return &Marker{Store: store, Loc: loc, Now: time.Now}
}

// MarkFromLogin menurunkan record kehadiran dari event login.
// Mengembalikan (nil, nil) untuk semua kondisi benign (siswa tanpa kelas,
// login di luar window, cool-down): login tidak boleh gagal karena absensi.
// Hanya kegagalan infrastruktur yang keluar sebagai error.
func (m *Marker) MarkFromLogin(ctx context.Context, studentID uuid.UUID, loginAt time.Time) (*attModel.AttendanceRecordModel, error) {
	// 1) Resolve siswa + kelasnya
	student, err := m.Store.FindStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.StudentClassID == nil {
		log.Printf("[ATTENDANCE] ⚠️ auto-mark dilewati: siswa %s tanpa kelas", studentID)
		return nil, nil
	}
	classID := *student.StudentClassID

	// 2) Tanggal kehadiran = hari kalender login
	today := DateOnly(loginAt, m.Loc)

	// 3) Re-login di hari yang sama → refresh login_timestamp saja,
	//    status tidak berubah (idempoten)
	if existing, err := m.Store.FindRecordForDate(ctx, studentID, classID, today); err != nil {
		return nil, err
	} else if existing != nil {
		if err := m.Store.RefreshLoginTimestamp(ctx, existing.AttendanceRecordID, loginAt); err != nil {
			return nil, err
		}
		ts := loginAt
		existing.AttendanceRecordLoginTimestamp = &ts
		return existing, nil
	}

	// 4) Cool-down 7 hari berjalan per (siswa, kelas)
	if prev, err := m.Store.FindLatestRecordBefore(ctx, studentID, classID, today); err != nil {
		return nil, err
	} else if prev != nil && DaysBetween(prev.AttendanceRecordDate, today) < CoolDownDays {
		return nil, nil
	}

	// 5) Window kelayakan dari jadwal aktif (kalau ada)
	status := attModel.AttendancePresent
	sched, err := m.Store.FindActiveSchedule(ctx, classID, loginAt.In(m.Loc).Weekday())
	if err != nil {
		return nil, err
	}
	if sched != nil {
		win, werr := BuildWindow(sched.ClassScheduleStartTime, sched.ClassScheduleEndTime, loginAt.In(m.Loc), m.Loc)
		if werr != nil {
			// Jam malformed = anggap tidak ada jadwal → present tanpa syarat
			log.Printf("[ATTENDANCE] ⚠️ jadwal %s punya jam malformed, degradasi ke present", sched.ClassScheduleID)
		} else {
			if !win.Contains(loginAt) {
				return nil, nil
			}
			if win.IsLate(loginAt) {
				status = attModel.AttendanceLate
			}
		}
	}

	// 6) Course level kelas saat ini (nullable)
	levelID, err := m.Store.CurrentCourseLevelID(ctx, classID)
	if err != nil {
		return nil, err
	}

	// 7) Insert; konflik unique berarti writer lain menang → anggap tercatat
	ts := loginAt
	rec := &attModel.AttendanceRecordModel{
		AttendanceRecordStudentID:      studentID,
		AttendanceRecordClassID:        classID,
		AttendanceRecordCourseLevelID:  levelID,
		AttendanceRecordDate:           today,
		AttendanceRecordStatus:         status,
		AttendanceRecordLoginTimestamp: &ts,
	}
	created, err := m.Store.InsertRecord(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !created {
		return m.Store.FindRecordForDate(ctx, studentID, classID, today)
	}
	return rec, nil
}

// MarkPresentForSession: jalur konfirmasi rekan se-sesi. Selalu upsert
// status=present untuk "hari ini" — tanpa window, tanpa cool-down;
// bukti co-presence sudah cukup. Status lama (apa pun) tertimpa.
func (m *Marker) MarkPresentForSession(ctx context.Context, studentID uuid.UUID, at time.Time) (*attModel.AttendanceRecordModel, error) {
	student, err := m.Store.FindStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.StudentClassID == nil {
		log.Printf("[ATTENDANCE] ⚠️ session-mark dilewati: siswa %s tanpa kelas", studentID)
		return nil, nil
	}
	classID := *student.StudentClassID

	levelID, err := m.Store.CurrentCourseLevelID(ctx, classID)
	if err != nil {
		return nil, err
	}

	rec := &attModel.AttendanceRecordModel{
		AttendanceRecordStudentID:     studentID,
		AttendanceRecordClassID:       classID,
		AttendanceRecordCourseLevelID: levelID,
		AttendanceRecordDate:          DateOnly(at, m.Loc),
		AttendanceRecordStatus:        attModel.AttendancePresent,
	}
	if err := m.Store.UpsertRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

type ManualMark struct {
	StudentID uuid.UUID
	ClassID   uuid.UUID
	Date      time.Time
	Status    attModel.AttendanceStatus
	Notes     *string
	MarkedBy  uuid.UUID
}

// MarkManually: upsert otoritatif untuk (siswa, kelas, course_level,
// tanggal). Record otomatis apa pun pada kunci yang sama tertimpa.
// Not-found di jalur ini bukan benign — ini request eksplisit.
func (m *Marker) MarkManually(ctx context.Context, in ManualMark) (*attModel.AttendanceRecordModel, error) {
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	student, err := m.Store.FindStudent(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	header, err := m.Store.ClassHeader(ctx, in.ClassID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, ErrClassNotFound
	}

	levelID, err := m.Store.CurrentCourseLevelID(ctx, in.ClassID)
	if err != nil {
		return nil, err
	}

	markedBy := in.MarkedBy
	rec := &attModel.AttendanceRecordModel{
		AttendanceRecordStudentID:     in.StudentID,
		AttendanceRecordClassID:       in.ClassID,
		AttendanceRecordCourseLevelID: levelID,
		AttendanceRecordDate:          DateOnly(in.Date, m.Loc),
		AttendanceRecordStatus:        in.Status,
		AttendanceRecordMarkedBy:      &markedBy,
		AttendanceRecordNotes:         in.Notes,
	}
	if err := m.Store.UpsertRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
