// file: internals/features/users/auth/scheduler/cleanup.go
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	model "schoolku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler menghapus entri blacklist yang sudah
// lewat TTL (default 7 hari setelah kadaluarsa) tiap 24 jam.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			var expiredTokens []model.TokenBlacklist
			if err := db.
				Where("expired_at < ? AND deleted_at IS NULL", deleteBefore).
				Limit(100).
				Find(&expiredTokens).Error; err != nil {
				log.Printf("[CLEANUP ERROR] Gagal ambil token kadaluarsa: %v", err)
			} else if len(expiredTokens) > 0 {
				if err := db.Delete(&expiredTokens).Error; err != nil {
					log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
				} else {
					log.Printf("[CLEANUP] %d token kadaluarsa dihapus", len(expiredTokens))
				}
			} else {
				log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
