package api

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"jobhunter/internal/db"
	"jobhunter/internal/middleware"
	"jobhunter/internal/models"
)

// RefreshHandler reports the refresh schedule.
type RefreshHandler struct {
	db *db.DB
}

// NewRefreshHandler creates a refresh status handler.
func NewRefreshHandler(database *db.DB) *RefreshHandler {
	return &RefreshHandler{db: database}
}

// Status reports the last refresh and whether the next one is due.
func (h *RefreshHandler) Status(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	last, err := h.db.GetLastRefresh(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch refresh state")
	}

	status := models.RefreshStatus{Status: "never"}
	if last != nil {
		status.LastRefresh = &last.RefreshedAt
		status.NextRefresh = last.NextRefreshAt
		status.JobsFound = last.JobsFound
		status.NewJobs = last.NewJobs

		status.Status = "scheduled"
		if last.NextRefreshAt != nil && last.NextRefreshAt.Before(time.Now()) {
			status.Status = "overdue"
		}
	}

	return jsonSuccess(c, status)
}
