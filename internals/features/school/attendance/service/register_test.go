// file: internals/features/school/attendance/service/register_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attModel "schoolku_backend/internals/features/school/attendance/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

// Fixture register: kelas tanpa jadwal (backfill no-op) dengan 2 siswa,
// supaya isi register murni dari record tersimpan.
func registerFixture() (*fakeStore, *RegisterBuilder, uuid.UUID, []uuid.UUID) {
	store := newFakeStore()
	classID := uuid.New()

	lead := "Ust. Rahmat"
	store.header = &ClassHeader{
		ClassID:    classID,
		ClassName:  "Kelas 7A",
		SchoolID:   uuid.New(),
		SchoolName: "SMP Harapan",
		LeadTutor:  &lead,
	}

	var ids []uuid.UUID
	for _, name := range []string{"Aisyah", "Budi"} {
		id := uuid.New()
		cid := classID
		store.students = append(store.students, studentModel.StudentModel{
			StudentID:      id,
			StudentClassID: &cid,
			StudentNumber:  "S-" + name[:1],
			StudentName:    name,
			StudentStatus:  studentModel.StudentActive,
		})
		ids = append(ids, id)
	}

	builder := NewRegisterBuilder(store, NewSweeper(store, wib))
	return store, builder, classID, ids
}

func TestBuildRegister_DatesAreDistinctStoredDatesOnly(t *testing.T) {
	store, builder, classID, ids := registerFixture()

	seedRecord(store, ids[0], classID, utcDate(2026, 3, 2), attModel.AttendancePresent, nil)
	seedRecord(store, ids[1], classID, utcDate(2026, 3, 2), attModel.AttendanceLate, nil)
	seedRecord(store, ids[0], classID, utcDate(2026, 3, 4), attModel.AttendanceAbsent, nil)
	// di luar rentang — tidak boleh muncul
	seedRecord(store, ids[0], classID, utcDate(2026, 3, 20), attModel.AttendancePresent, nil)

	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 8)}
	resp, err := builder.BuildRegister(context.Background(), classID, rng, RegisterFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-03-02", "2026-03-04"}, resp.Dates)
	assert.Equal(t, "Kelas 7A", resp.ClassName)
	require.NotNil(t, resp.LeadTutor)
	assert.Equal(t, "Ust. Rahmat", *resp.LeadTutor)
	assert.Equal(t, "2026-03-01", resp.DateRange.StartDate)
	assert.Equal(t, "2026-03-08", resp.DateRange.EndDate)
}

func TestBuildRegister_NullCellMeansNoRecordNotAbsent(t *testing.T) {
	store, builder, classID, ids := registerFixture()

	seedRecord(store, ids[0], classID, utcDate(2026, 3, 2), attModel.AttendancePresent, nil)
	seedRecord(store, ids[0], classID, utcDate(2026, 3, 4), attModel.AttendanceAbsent, nil)
	seedRecord(store, ids[1], classID, utcDate(2026, 3, 2), attModel.AttendanceLate, nil)
	// Budi tidak punya record 4 Maret → cell nil, bukan absent

	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 8)}
	resp, err := builder.BuildRegister(context.Background(), classID, rng, RegisterFilter{})
	require.NoError(t, err)

	require.Len(t, resp.Entries, 2)
	aisyah, budi := resp.Entries[0], resp.Entries[1]
	assert.Equal(t, "Aisyah", aisyah.StudentName)

	require.NotNil(t, aisyah.Attendance["2026-03-04"])
	assert.Equal(t, attModel.AttendanceAbsent, *aisyah.Attendance["2026-03-04"])

	require.NotNil(t, budi.Attendance["2026-03-02"])
	assert.Equal(t, attModel.AttendanceLate, *budi.Attendance["2026-03-02"])
	assert.Nil(t, budi.Attendance["2026-03-04"])
}

func TestBuildRegister_SummaryRate(t *testing.T) {
	t.Run("4 dari 6 cell hadir → 66.67", func(t *testing.T) {
		store, builder, classID, ids := registerFixture()

		seedRecord(store, ids[0], classID, utcDate(2026, 3, 2), attModel.AttendancePresent, nil)
		seedRecord(store, ids[0], classID, utcDate(2026, 3, 4), attModel.AttendancePresent, nil)
		seedRecord(store, ids[0], classID, utcDate(2026, 3, 6), attModel.AttendanceAbsent, nil)
		seedRecord(store, ids[1], classID, utcDate(2026, 3, 2), attModel.AttendanceLate, nil)
		seedRecord(store, ids[1], classID, utcDate(2026, 3, 6), attModel.AttendancePresent, nil)

		rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 8)}
		resp, err := builder.BuildRegister(context.Background(), classID, rng, RegisterFilter{})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Summary.TotalStudents)
		assert.Equal(t, 3, resp.Summary.TotalDays)
		assert.InDelta(t, 66.67, resp.Summary.AttendanceRate, 0.001)
	})

	t.Run("tanpa record → rate 0", func(t *testing.T) {
		_, builder, classID, _ := registerFixture()

		rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 8)}
		resp, err := builder.BuildRegister(context.Background(), classID, rng, RegisterFilter{})
		require.NoError(t, err)

		assert.Empty(t, resp.Dates)
		assert.Equal(t, 0, resp.Summary.TotalDays)
		assert.Equal(t, float64(0), resp.Summary.AttendanceRate)
	})
}

func TestBuildRegister_StudentFilter(t *testing.T) {
	store, builder, classID, ids := registerFixture()
	seedRecord(store, ids[0], classID, utcDate(2026, 3, 2), attModel.AttendancePresent, nil)
	seedRecord(store, ids[1], classID, utcDate(2026, 3, 2), attModel.AttendanceLate, nil)

	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 8)}

	resp, err := builder.BuildRegister(context.Background(), classID, rng, RegisterFilter{StudentID: &ids[1]})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Budi", resp.Entries[0].StudentName)
	assert.Equal(t, 1, resp.Summary.TotalStudents)

	// siswa bukan anggota kelas → error yang dilaporkan
	ghost := uuid.New()
	_, err = builder.BuildRegister(context.Background(), classID, rng, RegisterFilter{StudentID: &ghost})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestBuildRegister_CourseLevelFilter(t *testing.T) {
	store, builder, classID, ids := registerFixture()
	seedRecord(store, ids[0], classID, utcDate(2026, 3, 2), attModel.AttendancePresent, nil)

	// record tersimpan tanpa course_level; filter level lain → semua cell kosong
	other := uuid.New()
	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 8)}
	resp, err := builder.BuildRegister(context.Background(), classID, rng, RegisterFilter{CourseLevelID: &other})
	require.NoError(t, err)

	require.Len(t, resp.Dates, 1)
	for _, e := range resp.Entries {
		assert.Nil(t, e.Attendance["2026-03-02"])
	}
}

func TestBuildRegister_UnknownClass(t *testing.T) {
	_, builder, _, _ := registerFixture()

	rng := DateRange{From: utcDate(2026, 3, 1), To: utcDate(2026, 3, 8)}
	_, err := builder.BuildRegister(context.Background(), uuid.New(), rng, RegisterFilter{})
	assert.ErrorIs(t, err, ErrClassNotFound)
}
