package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"jobboard/internal/database"
)

// HealthCheck reports healthy only when the database answers a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.Ping(c.UserContext(), db, 2*time.Second); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
