// file: internals/features/school/class_schedules/service/schedule_resolver_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	schedModel "schoolku_backend/internals/features/school/class_schedules/model"
)

/* =========================
   Schedule Resolver

   Lookup jadwal mingguan aktif per (kelas, hari). Hasil join/lookup
   dinormalkan menjadi satu nilai opsional: nil berarti "tidak ada
   jadwal aktif" (termasuk day_of_week yang malformed — teks yang
   tidak dikenal tidak akan pernah match query).
========================= */

type Resolver struct{ DB *gorm.DB }

func NewResolver(db *gorm.DB) *Resolver { return &Resolver{DB: db} }

var dayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// DayName: bentuk kanonik day_of_week di DB.
func DayName(d time.Weekday) string { return dayNames[d] }

// WeekdayFromName: kebalikan DayName; ok=false untuk teks tidak dikenal.
func WeekdayFromName(name string) (time.Weekday, bool) {
	for wd, n := range dayNames {
		if n == name {
			return wd, true
		}
	}
	return time.Sunday, false
}

// FindActiveByClassAndDay mengembalikan satu jadwal aktif untuk
// (kelas, hari), atau nil bila tidak ada. Bila datanya ganda (harusnya
// satu per kelas per hari), diambil yang terbaru.
func (r *Resolver) FindActiveByClassAndDay(ctx context.Context, classID uuid.UUID, day time.Weekday) (*schedModel.ClassScheduleModel, error) {
	var sched schedModel.ClassScheduleModel
	err := r.DB.WithContext(ctx).
		Where("class_schedule_class_id = ? AND class_schedule_day_of_week = ? AND class_schedule_status = ?",
			classID, DayName(day), schedModel.ScheduleActive).
		Order("class_schedule_created_at DESC").
		Limit(1).
		Take(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

// FindActiveByClass mengembalikan semua jadwal aktif sebuah kelas
// (satu per hari yang terjadwal).
func (r *Resolver) FindActiveByClass(ctx context.Context, classID uuid.UUID) ([]schedModel.ClassScheduleModel, error) {
	var scheds []schedModel.ClassScheduleModel
	if err := r.DB.WithContext(ctx).
		Where("class_schedule_class_id = ? AND class_schedule_status = ?", classID, schedModel.ScheduleActive).
		Order("class_schedule_day_of_week ASC").
		Find(&scheds).Error; err != nil {
		return nil, err
	}
	return scheds, nil
}
