package api

import (
	"github.com/gofiber/fiber/v3"

	"jobhunter/internal/db"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Check verifies database connectivity.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if err := h.db.Pool.Ping(c.Context()); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return jsonSuccess(c, fiber.Map{"healthy": true})
}
