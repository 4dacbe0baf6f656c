// file: internals/features/school/attendance/service/marker_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attModel "schoolku_backend/internals/features/school/attendance/model"
	schedModel "schoolku_backend/internals/features/school/class_schedules/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

// Fixture: satu kelas dengan jadwal Senin 14:00–15:00 dan satu siswa aktif.
// Senin yang dipakai test: 2 Maret 2026.
func markerFixture() (*fakeStore, *Marker, uuid.UUID, uuid.UUID) {
	store := newFakeStore()
	classID := uuid.New()
	studentID := uuid.New()

	cid := classID
	store.students = append(store.students, studentModel.StudentModel{
		StudentID:      studentID,
		StudentClassID: &cid,
		StudentNumber:  "S-001",
		StudentName:    "Aisyah",
		StudentStatus:  studentModel.StudentActive,
	})
	store.schedules = append(store.schedules, schedModel.ClassScheduleModel{
		ClassScheduleID:        uuid.New(),
		ClassScheduleClassID:   classID,
		ClassScheduleDayOfWeek: "monday",
		ClassScheduleStartTime: "14:00",
		ClassScheduleEndTime:   "15:00",
		ClassScheduleStatus:    schedModel.ScheduleActive,
	})
	store.header = &ClassHeader{
		ClassID:    classID,
		ClassName:  "Kelas 7A",
		SchoolID:   uuid.New(),
		SchoolName: "SMP Harapan",
	}

	return store, NewMarker(store, wib), studentID, classID
}

func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, wib)
}

func TestMarkFromLogin_PresentInsideWindow(t *testing.T) {
	store, m, studentID, classID := markerFixture()

	rec, err := m.MarkFromLogin(context.Background(), studentID, mondayAt(14, 0))
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, attModel.AttendancePresent, rec.AttendanceRecordStatus)
	assert.Equal(t, classID, rec.AttendanceRecordClassID)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), rec.AttendanceRecordDate)
	require.NotNil(t, rec.AttendanceRecordLoginTimestamp)
	assert.Len(t, store.records, 1)
}

func TestMarkFromLogin_SameDayReloginRefreshesTimestampOnly(t *testing.T) {
	store, m, studentID, _ := markerFixture()

	first, err := m.MarkFromLogin(context.Background(), studentID, mondayAt(14, 20))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, attModel.AttendanceLate, first.AttendanceRecordStatus)

	relogin := mondayAt(14, 40)
	second, err := m.MarkFromLogin(context.Background(), studentID, relogin)
	require.NoError(t, err)
	require.NotNil(t, second)

	// status tidak berubah, hanya login_timestamp yang maju
	assert.Equal(t, attModel.AttendanceLate, second.AttendanceRecordStatus)
	require.NotNil(t, second.AttendanceRecordLoginTimestamp)
	assert.True(t, second.AttendanceRecordLoginTimestamp.Equal(relogin))
	assert.Equal(t, 1, store.refreshCalls)
	assert.Len(t, store.records, 1)
}

func TestMarkFromLogin_CoolDown(t *testing.T) {
	t.Run("kurang dari 7 hari ditahan", func(t *testing.T) {
		store, m, studentID, classID := markerFixture()
		store.records = append(store.records, attModel.AttendanceRecordModel{
			AttendanceRecordID:        uuid.New(),
			AttendanceRecordStudentID: studentID,
			AttendanceRecordClassID:   classID,
			AttendanceRecordDate:      time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC), // 6 hari lalu
			AttendanceRecordStatus:    attModel.AttendancePresent,
		})

		rec, err := m.MarkFromLogin(context.Background(), studentID, mondayAt(14, 0))
		require.NoError(t, err)
		assert.Nil(t, rec)
		assert.Len(t, store.records, 1)
	})

	t.Run("tepat 7 hari boleh lagi", func(t *testing.T) {
		store, m, studentID, classID := markerFixture()
		store.records = append(store.records, attModel.AttendanceRecordModel{
			AttendanceRecordID:        uuid.New(),
			AttendanceRecordStudentID: studentID,
			AttendanceRecordClassID:   classID,
			AttendanceRecordDate:      time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), // 7 hari lalu
			AttendanceRecordStatus:    attModel.AttendancePresent,
		})

		rec, err := m.MarkFromLogin(context.Background(), studentID, mondayAt(14, 0))
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Len(t, store.records, 2)
	})
}

func TestMarkFromLogin_NoScheduleMeansUnconditionalPresent(t *testing.T) {
	_, m, studentID, _ := markerFixture()

	// Selasa dini hari — tidak ada jadwal selasa
	rec, err := m.MarkFromLogin(context.Background(), studentID, time.Date(2026, 3, 3, 3, 0, 0, 0, wib))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attModel.AttendancePresent, rec.AttendanceRecordStatus)
}

func TestMarkFromLogin_OutsideWindowNoRecord(t *testing.T) {
	store, m, studentID, _ := markerFixture()

	// 13:00 < window buka 13:20
	rec, err := m.MarkFromLogin(context.Background(), studentID, mondayAt(13, 0))
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Empty(t, store.records)

	// 16:01 > window tutup 16:00
	rec, err = m.MarkFromLogin(context.Background(), studentID, mondayAt(16, 1))
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Empty(t, store.records)
}

func TestMarkFromLogin_LateAfterThreshold(t *testing.T) {
	_, m, studentID, _ := markerFixture()

	rec, err := m.MarkFromLogin(context.Background(), studentID, mondayAt(14, 20))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attModel.AttendanceLate, rec.AttendanceRecordStatus)
}

func TestMarkFromLogin_MissingStudentIsBenign(t *testing.T) {
	store, m, _, _ := markerFixture()

	rec, err := m.MarkFromLogin(context.Background(), uuid.New(), mondayAt(14, 0))
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Empty(t, store.records)
}

func TestMarkFromLogin_ConflictTreatedAsAlreadyMarked(t *testing.T) {
	store, m, studentID, _ := markerFixture()
	store.forceConflict = true

	rec, err := m.MarkFromLogin(context.Background(), studentID, mondayAt(14, 0))
	require.NoError(t, err)

	// Insert kalah race → record pemenang yang dikembalikan, tanpa duplikat
	require.NotNil(t, rec)
	assert.Len(t, store.records, 1)
}

func TestMarkPresentForSession_OverwritesPriorStatus(t *testing.T) {
	store, m, studentID, classID := markerFixture()
	store.records = append(store.records, attModel.AttendanceRecordModel{
		AttendanceRecordID:        uuid.New(),
		AttendanceRecordStudentID: studentID,
		AttendanceRecordClassID:   classID,
		AttendanceRecordDate:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		AttendanceRecordStatus:    attModel.AttendanceAbsent,
	})

	rec, err := m.MarkPresentForSession(context.Background(), studentID, mondayAt(16, 30))
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Len(t, store.records, 1)
	assert.Equal(t, attModel.AttendancePresent, store.records[0].AttendanceRecordStatus)
	// jalur sesi tidak menulis login_timestamp maupun marked_by
	assert.Nil(t, store.records[0].AttendanceRecordLoginTimestamp)
	assert.Nil(t, store.records[0].AttendanceRecordMarkedBy)
}

func TestMarkManually(t *testing.T) {
	t.Run("menimpa record otomatis", func(t *testing.T) {
		store, m, studentID, classID := markerFixture()
		ts := mondayAt(14, 0)
		store.records = append(store.records, attModel.AttendanceRecordModel{
			AttendanceRecordID:             uuid.New(),
			AttendanceRecordStudentID:      studentID,
			AttendanceRecordClassID:        classID,
			AttendanceRecordDate:           time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			AttendanceRecordStatus:         attModel.AttendanceLate,
			AttendanceRecordLoginTimestamp: &ts,
		})

		markedBy := uuid.New()
		notes := "izin sakit, surat menyusul"
		rec, err := m.MarkManually(context.Background(), ManualMark{
			StudentID: studentID,
			ClassID:   classID,
			Date:      mondayAt(0, 0),
			Status:    attModel.AttendanceExcused,
			Notes:     &notes,
			MarkedBy:  markedBy,
		})
		require.NoError(t, err)
		require.NotNil(t, rec)

		assert.Len(t, store.records, 1)
		assert.Equal(t, attModel.AttendanceExcused, store.records[0].AttendanceRecordStatus)
		require.NotNil(t, store.records[0].AttendanceRecordMarkedBy)
		assert.Equal(t, markedBy, *store.records[0].AttendanceRecordMarkedBy)
	})

	t.Run("status tidak dikenal", func(t *testing.T) {
		_, m, studentID, classID := markerFixture()
		_, err := m.MarkManually(context.Background(), ManualMark{
			StudentID: studentID,
			ClassID:   classID,
			Date:      mondayAt(0, 0),
			Status:    attModel.AttendanceStatus("hadir_banget"),
			MarkedBy:  uuid.New(),
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("siswa tidak ada", func(t *testing.T) {
		_, m, _, classID := markerFixture()
		_, err := m.MarkManually(context.Background(), ManualMark{
			StudentID: uuid.New(),
			ClassID:   classID,
			Date:      mondayAt(0, 0),
			Status:    attModel.AttendancePresent,
			MarkedBy:  uuid.New(),
		})
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("kelas tidak ada", func(t *testing.T) {
		_, m, studentID, _ := markerFixture()
		_, err := m.MarkManually(context.Background(), ManualMark{
			StudentID: studentID,
			ClassID:   uuid.New(),
			Date:      mondayAt(0, 0),
			Status:    attModel.AttendancePresent,
			MarkedBy:  uuid.New(),
		})
		assert.ErrorIs(t, err, ErrClassNotFound)
	})
}
