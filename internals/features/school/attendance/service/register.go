// file: internals/features/school/attendance/service/register.go
package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	dto "schoolku_backend/internals/features/school/attendance/dto"
	attModel "schoolku_backend/internals/features/school/attendance/model"
)

/* =========================
   Register Builder

   Pivot record tersimpan menjadi matriks siswa × tanggal + ringkasan.
   dates[] = tanggal yang BENAR-BENAR punya record di storage
   (pasca-backfill), bukan daftar teoretis okurensi jadwal.
========================= */

type RegisterFilter struct {
	StudentID     *uuid.UUID
	CourseLevelID *uuid.UUID
}

type RegisterBuilder struct {
	Store   Store
	Sweeper *Sweeper
}

func NewRegisterBuilder(store Store, sweeper *Sweeper) *RegisterBuilder {
	return &RegisterBuilder{Store: store, Sweeper: sweeper}
}

func (b *RegisterBuilder) BuildRegister(ctx context.Context, classID uuid.UUID, rng DateRange, filter RegisterFilter) (*dto.AttendanceRegisterResponse, error) {
	// 0) Header dulu — kelas tidak ada = error yang dilaporkan ke caller
	header, err := b.Store.ClassHeader(ctx, classID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, ErrClassNotFound
	}

	// 1) Materialisasi absent untuk sesi yang sudah lewat
	if err := b.Sweeper.BackfillClass(ctx, classID, rng); err != nil {
		return nil, err
	}

	// 2) Tanggal distinct yang ada di storage untuk rentang ini
	dates, err := b.Store.DistinctRecordDates(ctx, classID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	// 3) Siswa aktif (opsional difilter satu siswa)
	students, err := b.Store.FindActiveStudentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if filter.StudentID != nil {
		found := false
		for i := range students {
			if students[i].StudentID == *filter.StudentID {
				students = students[i : i+1]
				found = true
				break
			}
		}
		if !found {
			return nil, ErrStudentNotFound
		}
	}

	// 4) Semua record (kelas, tanggal-tanggal itu), filter opsional
	recs, err := b.Store.RecordsForClassDates(ctx, classID, dates, filter.CourseLevelID, filter.StudentID)
	if err != nil {
		return nil, err
	}

	// 5) Pivot → entries (satu baris per siswa, kolom per tanggal)
	dateKeys := make([]string, len(dates))
	for i, d := range dates {
		dateKeys[i] = d.Format("2006-01-02")
	}

	byStudent := make(map[uuid.UUID]map[string]*attModel.AttendanceStatus, len(students))
	for i := range recs {
		r := recs[i]
		cell, ok := byStudent[r.AttendanceRecordStudentID]
		if !ok {
			cell = make(map[string]*attModel.AttendanceStatus, len(dateKeys))
			byStudent[r.AttendanceRecordStudentID] = cell
		}
		status := r.AttendanceRecordStatus
		cell[r.AttendanceRecordDate.Format("2006-01-02")] = &status
	}

	presentCells := 0
	entries := make([]dto.RegisterEntry, 0, len(students))
	for i := range students {
		st := students[i]
		attendance := make(map[string]*attModel.AttendanceStatus, len(dateKeys))
		cells := byStudent[st.StudentID]
		for _, key := range dateKeys {
			var status *attModel.AttendanceStatus
			if cells != nil {
				status = cells[key] // nil = tidak ada record (≠ absent)
			}
			attendance[key] = status
			if status != nil && status.CountsAsPresent() {
				presentCells++
			}
		}
		entries = append(entries, dto.RegisterEntry{
			StudentID:     st.StudentID,
			StudentName:   st.StudentName,
			StudentNumber: st.StudentNumber,
			Attendance:    attendance,
		})
	}

	// 6) Ringkasan
	summary := dto.RegisterSummary{
		TotalStudents: len(students),
		TotalDays:     len(dateKeys),
	}
	if denom := len(students) * len(dateKeys); denom > 0 {
		summary.AttendanceRate = round2(100 * float64(presentCells) / float64(denom))
	}

	return &dto.AttendanceRegisterResponse{
		ClassID:         header.ClassID,
		ClassName:       header.ClassName,
		SchoolID:        header.SchoolID,
		SchoolName:      header.SchoolName,
		LeadTutor:       header.LeadTutor,
		AssistantTutor:  header.AssistantTutor,
		CourseLevelID:   header.CourseLevelID,
		CourseLevelName: header.CourseLevelName,
		DateRange: dto.RegisterDateRange{
			StartDate: rng.From.Format("2006-01-02"),
			EndDate:   rng.To.Format("2006-01-02"),
		},
		Dates:   dateKeys,
		Entries: entries,
		Summary: summary,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseDateRange: "YYYY-MM-DD" → rentang tengah malam UTC inklusif.
func ParseDateRange(start, end string) (DateRange, error) {
	from, err := time.ParseInLocation("2006-01-02", start, time.UTC)
	if err != nil {
		return DateRange{}, err
	}
	to, err := time.ParseInLocation("2006-01-02", end, time.UTC)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{From: from, To: to}, nil
}
