// file: internals/features/school/attendance/service/backfill_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attModel "schoolku_backend/internals/features/school/attendance/model"
	schedModel "schoolku_backend/internals/features/school/class_schedules/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

// Fixture sweep: kelas dengan jadwal Senin 14:00–15:00 WIB dan 4 siswa.
// Senin target: 2 Maret 2026 (window tutup 16:00 WIB = 09:00 UTC).
func sweeperFixture(studentCount int) (*fakeStore, *Sweeper, uuid.UUID, []uuid.UUID) {
	store := newFakeStore()
	classID := uuid.New()

	names := []string{"Aisyah", "Budi", "Citra", "Dimas", "Eka"}
	var ids []uuid.UUID
	for i := 0; i < studentCount; i++ {
		id := uuid.New()
		cid := classID
		store.students = append(store.students, studentModel.StudentModel{
			StudentID:      id,
			StudentClassID: &cid,
			StudentNumber:  names[i][:1] + "-00" + string(rune('1'+i)),
			StudentName:    names[i],
			StudentStatus:  studentModel.StudentActive,
		})
		ids = append(ids, id)
	}

	store.schedules = append(store.schedules, schedModel.ClassScheduleModel{
		ClassScheduleID:        uuid.New(),
		ClassScheduleClassID:   classID,
		ClassScheduleDayOfWeek: "monday",
		ClassScheduleStartTime: "14:00",
		ClassScheduleEndTime:   "15:00",
		ClassScheduleStatus:    schedModel.ScheduleActive,
	})

	sweeper := NewSweeper(store, wib)
	sweeper.Now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return store, sweeper, classID, ids
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedRecord(store *fakeStore, studentID, classID uuid.UUID, date time.Time, status attModel.AttendanceStatus, login *time.Time) {
	store.records = append(store.records, attModel.AttendanceRecordModel{
		AttendanceRecordID:             uuid.New(),
		AttendanceRecordStudentID:      studentID,
		AttendanceRecordClassID:        classID,
		AttendanceRecordDate:           date,
		AttendanceRecordStatus:         status,
		AttendanceRecordLoginTimestamp: login,
	})
}

func TestBackfill_AccountedLogic(t *testing.T) {
	store, sweeper, classID, ids := sweeperFixture(4)
	monday := utcDate(2026, 3, 2)

	// A: login dalam window → terhitung hadir
	inWin := time.Date(2026, 3, 2, 14, 0, 0, 0, wib)
	seedRecord(store, ids[0], classID, monday, attModel.AttendancePresent, &inWin)

	// B: record manual tanpa login_timestamp → terhitung hadir
	seedRecord(store, ids[1], classID, monday, attModel.AttendanceExcused, nil)

	// C: login di LUAR window → tidak terhitung, tapi insert absent
	//    konflik dengan record yang sudah ada (no-op)
	outWin := time.Date(2026, 3, 2, 17, 0, 0, 0, wib)
	seedRecord(store, ids[2], classID, monday, attModel.AttendancePresent, &outWin)

	// D: tanpa record sama sekali → divonis absent

	rng := DateRange{From: monday, To: monday}
	err := sweeper.BackfillClass(context.Background(), classID, rng)
	require.NoError(t, err)

	require.Len(t, store.records, 4)

	byStudent := map[uuid.UUID]attModel.AttendanceRecordModel{}
	for _, r := range store.records {
		byStudent[r.AttendanceRecordStudentID] = r
	}
	assert.Equal(t, attModel.AttendancePresent, byStudent[ids[0]].AttendanceRecordStatus)
	assert.Equal(t, attModel.AttendanceExcused, byStudent[ids[1]].AttendanceRecordStatus)
	// record C tidak tertimpa — insert absent kalah konflik unique
	assert.Equal(t, attModel.AttendancePresent, byStudent[ids[2]].AttendanceRecordStatus)
	assert.Equal(t, attModel.AttendanceAbsent, byStudent[ids[3]].AttendanceRecordStatus)
	assert.Nil(t, byStudent[ids[3]].AttendanceRecordLoginTimestamp)
}

func TestBackfill_SkipsSessionStillInProgress(t *testing.T) {
	store, sweeper, classID, _ := sweeperFixture(2)
	monday := utcDate(2026, 3, 2)

	// 15:00 WIB: kelas bubar tapi window masih buka sampai 16:00
	sweeper.Now = func() time.Time { return time.Date(2026, 3, 2, 15, 0, 0, 0, wib) }

	rng := DateRange{From: monday, To: monday}
	require.NoError(t, sweeper.BackfillClass(context.Background(), classID, rng))
	assert.Empty(t, store.records)
}

func TestBackfill_OnlyScheduledDaysInRange(t *testing.T) {
	store, sweeper, classID, ids := sweeperFixture(1)

	// Rentang 1–10 Maret memuat dua Senin: tgl 2 dan 9
	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 10)}
	require.NoError(t, sweeper.BackfillClass(context.Background(), classID, rng))

	require.Len(t, store.records, 2)
	assert.Equal(t, utcDate(2026, 3, 2), store.records[0].AttendanceRecordDate)
	assert.Equal(t, utcDate(2026, 3, 9), store.records[1].AttendanceRecordDate)
	for _, r := range store.records {
		assert.Equal(t, ids[0], r.AttendanceRecordStudentID)
		assert.Equal(t, attModel.AttendanceAbsent, r.AttendanceRecordStatus)
	}
}

func TestBackfill_DoubleRunIsIdempotent(t *testing.T) {
	store, sweeper, classID, _ := sweeperFixture(3)
	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 10)}

	require.NoError(t, sweeper.BackfillClass(context.Background(), classID, rng))
	countAfterFirst := len(store.records)

	require.NoError(t, sweeper.BackfillClass(context.Background(), classID, rng))
	assert.Equal(t, countAfterFirst, len(store.records))
}

func TestBackfill_ContinuesAfterPerStudentFailure(t *testing.T) {
	store, sweeper, classID, ids := sweeperFixture(3)
	monday := utcDate(2026, 3, 2)

	store.insertErr[ids[1]] = errors.New("connection reset")

	rng := DateRange{From: monday, To: monday}
	require.NoError(t, sweeper.BackfillClass(context.Background(), classID, rng))

	// siswa lain tetap diproses meski satu insert gagal
	require.Len(t, store.records, 2)
	got := map[uuid.UUID]bool{}
	for _, r := range store.records {
		got[r.AttendanceRecordStudentID] = true
	}
	assert.True(t, got[ids[0]])
	assert.False(t, got[ids[1]])
	assert.True(t, got[ids[2]])
}

func TestBackfill_UnknownDayNameIsNoSchedule(t *testing.T) {
	store, sweeper, classID, _ := sweeperFixture(2)
	store.schedules[0].ClassScheduleDayOfWeek = "someday"

	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 10)}
	require.NoError(t, sweeper.BackfillClass(context.Background(), classID, rng))
	assert.Empty(t, store.records)
}
