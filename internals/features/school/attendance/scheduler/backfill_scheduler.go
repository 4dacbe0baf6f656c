// file: internals/features/school/attendance/scheduler/backfill_scheduler.go
package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	attService "schoolku_backend/internals/features/school/attendance/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
)

// StartAbsenceBackfillScheduler menjalankan sweep absent periodik untuk
// semua kelas aktif. Rentang sweep = N hari ke belakang (default 14),
// supaya sesi yang terlewat saat server mati tetap tervonis.
func StartAbsenceBackfillScheduler(db *gorm.DB) {
	go func() {
		lookbackDays := 14
		if val := os.Getenv("ATTENDANCE_BACKFILL_LOOKBACK_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				lookbackDays = parsed
			}
		}

		intervalHours := 6
		if val := os.Getenv("ATTENDANCE_BACKFILL_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		loc, err := time.LoadLocation(configs.AttendanceTZ)
		if err != nil {
			log.Printf("[BACKFILL] ⚠️ timezone %q tidak dikenal, fallback UTC: %v", configs.AttendanceTZ, err)
			loc = time.UTC
		}

		store := attService.NewGormStore(db)
		sweeper := attService.NewSweeper(store, loc)

		for {
			log.Println("[BACKFILL] Menjalankan sweep absent...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)

			var classIDs []uuid.UUID
			if err := db.WithContext(ctx).
				Model(&classModel.ClassModel{}).
				Where("class_is_active = TRUE").
				Pluck("class_id", &classIDs).Error; err != nil {
				log.Printf("[BACKFILL ERROR] Gagal ambil daftar kelas: %v", err)
			} else {
				now := time.Now()
				rng := attService.DateRange{
					From: attService.DateOnly(now.AddDate(0, 0, -lookbackDays), loc),
					To:   attService.DateOnly(now, loc),
				}
				swept := 0
				for _, classID := range classIDs {
					if err := sweeper.BackfillClass(ctx, classID, rng); err != nil {
						log.Printf("[BACKFILL ERROR] Kelas %s: %v", classID, err)
						continue
					}
					swept++
				}
				log.Printf("[BACKFILL] Selesai: %d/%d kelas di-sweep", swept, len(classIDs))
			}

			cancel()
			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
