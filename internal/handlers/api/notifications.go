package api

import (
	"github.com/gofiber/fiber/v3"

	"jobhunter/internal/db"
	"jobhunter/internal/email"
	"jobhunter/internal/middleware"
)

// NotificationHandler serves the email digest endpoints.
type NotificationHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(database *db.DB, notifier *email.Notifier) *NotificationHandler {
	return &NotificationHandler{db: database, notifier: notifier}
}

// Check looks for fresh matching jobs and sends a digest if any exist.
func (h *NotificationHandler) Check(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.notifier.CheckAndNotify(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "notification check failed")
	}

	return jsonSuccess(c, result)
}

// History returns the user's notification log, newest first.
func (h *NotificationHandler) History(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	notifications, err := h.db.GetEmailNotifications(c.Context(), user.ID, queryInt(c, "limit", 20))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch notifications")
	}

	return jsonSuccess(c, notifications)
}

// Test sends a test email to verify SMTP settings.
func (h *NotificationHandler) Test(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.notifier.SendTest(c.Context(), user.ID); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return jsonSuccess(c, fiber.Map{"message": "test notification sent"})
}
