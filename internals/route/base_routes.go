// file: internals/route/base_routes.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes: endpoint umum tanpa auth.
func BaseRoutes(api fiber.Router, db *gorm.DB) {
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "pong",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"db":     "down",
			})
		}
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     "up",
		})
	})
}
