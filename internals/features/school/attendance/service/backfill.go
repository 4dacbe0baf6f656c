// file: internals/features/school/attendance/service/backfill.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	attModel "schoolku_backend/internals/features/school/attendance/model"
	schedModel "schoolku_backend/internals/features/school/class_schedules/model"
	schedService "schoolku_backend/internals/features/school/class_schedules/service"
)

/* =========================
   Absence Backfill Sweeper

   Sintesis record "absent" untuk sesi terjadwal yang sudah lewat
   tanpa tanda kehadiran. Idempoten: kunci unique di DB menjadikan
   konflik insert sebagai no-op, jadi aman dijalankan berulang dan
   paralel (read-time sebelum register build + job periodik).
========================= */

type DateRange struct {
	From time.Time // inklusif, tengah malam UTC
	To   time.Time // inklusif
}

type Sweeper struct {
	Store Store
	Loc   *time.Location
	Now   func() time.Time
}

func NewSweeper(store Store, loc *time.Location) *Sweeper {
	if loc == nil {
		loc = time.UTC
	}
	return &Sweeper{Store: store, Loc: loc, Now: time.Now}
}

// BackfillClass menjalankan sweep untuk semua jadwal aktif sebuah kelas.
func (s *Sweeper) BackfillClass(ctx context.Context, classID uuid.UUID, rng DateRange) error {
	scheds, err := s.Store.FindActiveSchedulesByClass(ctx, classID)
	if err != nil {
		return err
	}
	for i := range scheds {
		if err := s.BackfillAbsences(ctx, classID, &scheds[i], rng); err != nil {
			return err
		}
	}
	return nil
}

// BackfillAbsences memproses satu jadwal mingguan: setiap okurensi
// day_of_week di dalam rentang yang window-nya sudah lewat, siswa aktif
// tanpa bukti kehadiran diberi record absent.
//
// "Terhitung hadir" untuk satu tanggal:
//   - record dengan login_timestamp di dalam [window_start, window_end], ATAU
//   - record tanpa login_timestamp (manual/sesi) — kapan pun dibuatnya.
//
// Kegagalan insert per siswa dicatat lalu dilanjutkan (best-effort).
func (s *Sweeper) BackfillAbsences(ctx context.Context, classID uuid.UUID, sched *schedModel.ClassScheduleModel, rng DateRange) error {
	if sched == nil {
		return nil
	}
	day, ok := schedService.WeekdayFromName(sched.ClassScheduleDayOfWeek)
	if !ok {
		// day_of_week malformed = tidak ada jadwal → tidak ada yang di-backfill
		return nil
	}

	students, err := s.Store.FindActiveStudentsByClass(ctx, classID)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return nil
	}

	levelID, err := s.Store.CurrentCourseLevelID(ctx, classID)
	if err != nil {
		return err
	}

	now := s.Now()
	for d := rng.From; !d.After(rng.To); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != day {
			continue
		}

		win, werr := BuildWindow(sched.ClassScheduleStartTime, sched.ClassScheduleEndTime, d, s.Loc)
		if werr != nil {
			continue
		}
		if now.Before(win.WindowEnd) {
			// Sesi belum selesai — belum boleh divonis absent
			continue
		}

		recs, err := s.Store.RecordsForClassDate(ctx, classID, d)
		if err != nil {
			return err
		}
		accounted := make(map[uuid.UUID]struct{}, len(recs))
		for i := range recs {
			r := recs[i]
			if r.AttendanceRecordLoginTimestamp == nil {
				// Manual / sesi: bukti sah tanpa melihat jam
				accounted[r.AttendanceRecordStudentID] = struct{}{}
				continue
			}
			if win.Contains(*r.AttendanceRecordLoginTimestamp) {
				accounted[r.AttendanceRecordStudentID] = struct{}{}
			}
		}

		for i := range students {
			st := students[i]
			if _, ok := accounted[st.StudentID]; ok {
				continue
			}
			rec := &attModel.AttendanceRecordModel{
				AttendanceRecordStudentID:     st.StudentID,
				AttendanceRecordClassID:       classID,
				AttendanceRecordCourseLevelID: levelID,
				AttendanceRecordDate:          d,
				AttendanceRecordStatus:        attModel.AttendanceAbsent,
			}
			if _, err := s.Store.InsertRecord(ctx, rec); err != nil {
				// Partial failure: catat, lanjutkan siswa berikutnya
				log.Printf("[ATTENDANCE] ❌ backfill gagal utk siswa %s tanggal %s: %v",
					st.StudentID, d.Format("2006-01-02"), err)
				continue
			}
		}
	}
	return nil
}
