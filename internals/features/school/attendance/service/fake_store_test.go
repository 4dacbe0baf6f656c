// file: internals/features/school/attendance/service/fake_store_test.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	attModel "schoolku_backend/internals/features/school/attendance/model"
	schedModel "schoolku_backend/internals/features/school/class_schedules/model"
	schedService "schoolku_backend/internals/features/school/class_schedules/service"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

// fakeStore: implementasi Store in-memory untuk unit test service.
// Insert meniru semantik kunci unique DB: kunci sama = konflik (no-op).
type fakeStore struct {
	students  []studentModel.StudentModel
	schedules []schedModel.ClassScheduleModel
	levelID   *uuid.UUID
	header    *ClassHeader

	records []attModel.AttendanceRecordModel

	// simulasi kegagalan insert per siswa (partial failure backfill)
	insertErr map[uuid.UUID]error
	// simulasi kalah race: insert berikutnya dianggap konflik
	forceConflict bool

	refreshCalls int
	insertCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{insertErr: map[uuid.UUID]error{}}
}

func (f *fakeStore) FindStudent(_ context.Context, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	for i := range f.students {
		if f.students[i].StudentID == studentID {
			st := f.students[i]
			return &st, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindActiveStudentsByClass(_ context.Context, classID uuid.UUID) ([]studentModel.StudentModel, error) {
	var out []studentModel.StudentModel
	for i := range f.students {
		st := f.students[i]
		if st.StudentClassID != nil && *st.StudentClassID == classID && st.StudentStatus == studentModel.StudentActive {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentName < out[j].StudentName })
	return out, nil
}

func (f *fakeStore) FindActiveSchedule(_ context.Context, classID uuid.UUID, day time.Weekday) (*schedModel.ClassScheduleModel, error) {
	for i := range f.schedules {
		s := f.schedules[i]
		if s.ClassScheduleClassID == classID &&
			s.ClassScheduleDayOfWeek == schedService.DayName(day) &&
			s.ClassScheduleStatus == schedModel.ScheduleActive {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindActiveSchedulesByClass(_ context.Context, classID uuid.UUID) ([]schedModel.ClassScheduleModel, error) {
	var out []schedModel.ClassScheduleModel
	for i := range f.schedules {
		s := f.schedules[i]
		if s.ClassScheduleClassID == classID && s.ClassScheduleStatus == schedModel.ScheduleActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CurrentCourseLevelID(_ context.Context, _ uuid.UUID) (*uuid.UUID, error) {
	return f.levelID, nil
}

func sameLevel(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (f *fakeStore) findIndex(studentID, classID uuid.UUID, levelID *uuid.UUID, date time.Time) int {
	for i := range f.records {
		r := f.records[i]
		if r.AttendanceRecordStudentID == studentID &&
			r.AttendanceRecordClassID == classID &&
			sameLevel(r.AttendanceRecordCourseLevelID, levelID) &&
			r.AttendanceRecordDate.Equal(date) {
			return i
		}
	}
	return -1
}

func (f *fakeStore) FindRecordForDate(_ context.Context, studentID, classID uuid.UUID, date time.Time) (*attModel.AttendanceRecordModel, error) {
	for i := range f.records {
		r := f.records[i]
		if r.AttendanceRecordStudentID == studentID &&
			r.AttendanceRecordClassID == classID &&
			r.AttendanceRecordDate.Equal(date) {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindLatestRecordBefore(_ context.Context, studentID, classID uuid.UUID, date time.Time) (*attModel.AttendanceRecordModel, error) {
	var latest *attModel.AttendanceRecordModel
	for i := range f.records {
		r := f.records[i]
		if r.AttendanceRecordStudentID == studentID &&
			r.AttendanceRecordClassID == classID &&
			r.AttendanceRecordDate.Before(date) {
			if latest == nil || r.AttendanceRecordDate.After(latest.AttendanceRecordDate) {
				rec := r
				latest = &rec
			}
		}
	}
	return latest, nil
}

func (f *fakeStore) RefreshLoginTimestamp(_ context.Context, recordID uuid.UUID, ts time.Time) error {
	f.refreshCalls++
	for i := range f.records {
		if f.records[i].AttendanceRecordID == recordID {
			t := ts
			f.records[i].AttendanceRecordLoginTimestamp = &t
		}
	}
	return nil
}

func (f *fakeStore) InsertRecord(_ context.Context, rec *attModel.AttendanceRecordModel) (bool, error) {
	f.insertCalls++
	if err := f.insertErr[rec.AttendanceRecordStudentID]; err != nil {
		return false, err
	}
	if f.forceConflict {
		// writer lain menang: simpan record versi pemenang, lapor konflik
		if f.findIndex(rec.AttendanceRecordStudentID, rec.AttendanceRecordClassID,
			rec.AttendanceRecordCourseLevelID, rec.AttendanceRecordDate) < 0 {
			winner := *rec
			winner.AttendanceRecordID = uuid.New()
			winner.AttendanceRecordStatus = attModel.AttendancePresent
			winner.AttendanceRecordLoginTimestamp = nil
			f.records = append(f.records, winner)
		}
		return false, nil
	}
	if f.findIndex(rec.AttendanceRecordStudentID, rec.AttendanceRecordClassID,
		rec.AttendanceRecordCourseLevelID, rec.AttendanceRecordDate) >= 0 {
		return false, nil
	}
	if rec.AttendanceRecordID == uuid.Nil {
		rec.AttendanceRecordID = uuid.New()
	}
	f.records = append(f.records, *rec)
	return true, nil
}

func (f *fakeStore) UpsertRecord(_ context.Context, rec *attModel.AttendanceRecordModel) error {
	if i := f.findIndex(rec.AttendanceRecordStudentID, rec.AttendanceRecordClassID,
		rec.AttendanceRecordCourseLevelID, rec.AttendanceRecordDate); i >= 0 {
		rec.AttendanceRecordID = f.records[i].AttendanceRecordID
		f.records[i].AttendanceRecordStatus = rec.AttendanceRecordStatus
		f.records[i].AttendanceRecordLoginTimestamp = rec.AttendanceRecordLoginTimestamp
		f.records[i].AttendanceRecordMarkedBy = rec.AttendanceRecordMarkedBy
		f.records[i].AttendanceRecordNotes = rec.AttendanceRecordNotes
		return nil
	}
	if rec.AttendanceRecordID == uuid.Nil {
		rec.AttendanceRecordID = uuid.New()
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeStore) RecordsForClassDate(_ context.Context, classID uuid.UUID, date time.Time) ([]attModel.AttendanceRecordModel, error) {
	var out []attModel.AttendanceRecordModel
	for i := range f.records {
		r := f.records[i]
		if r.AttendanceRecordClassID == classID && r.AttendanceRecordDate.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) DistinctRecordDates(_ context.Context, classID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	seen := map[time.Time]struct{}{}
	var out []time.Time
	for i := range f.records {
		r := f.records[i]
		if r.AttendanceRecordClassID != classID {
			continue
		}
		d := r.AttendanceRecordDate
		if d.Before(from) || d.After(to) {
			continue
		}
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (f *fakeStore) RecordsForClassDates(_ context.Context, classID uuid.UUID, dates []time.Time, courseLevelID, studentID *uuid.UUID) ([]attModel.AttendanceRecordModel, error) {
	inDates := func(d time.Time) bool {
		for _, x := range dates {
			if x.Equal(d) {
				return true
			}
		}
		return false
	}
	var out []attModel.AttendanceRecordModel
	for i := range f.records {
		r := f.records[i]
		if r.AttendanceRecordClassID != classID || !inDates(r.AttendanceRecordDate) {
			continue
		}
		if courseLevelID != nil && !sameLevel(r.AttendanceRecordCourseLevelID, courseLevelID) {
			continue
		}
		if studentID != nil && r.AttendanceRecordStudentID != *studentID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) ClassHeader(_ context.Context, classID uuid.UUID) (*ClassHeader, error) {
	if f.header != nil && f.header.ClassID == classID {
		h := *f.header
		return &h, nil
	}
	return nil, nil
}
