package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobhunter/internal/autoapply"
	"jobhunter/internal/db"
	"jobhunter/internal/middleware"
	"jobhunter/internal/models"
)

// ApplicationHandler serves application tracking.
type ApplicationHandler struct {
	db        *db.DB
	autoapply *autoapply.Engine
}

// NewApplicationHandler creates an application handler.
func NewApplicationHandler(database *db.DB, aa *autoapply.Engine) *ApplicationHandler {
	return &ApplicationHandler{db: database, autoapply: aa}
}

// List returns the user's applications joined with their jobs, newest
// first. Filterable by type and status.
func (h *ApplicationHandler) List(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	appType := c.Query("type", "")
	if appType != "" && appType != models.ApplicationManual && appType != models.ApplicationAutomatic {
		return jsonError(c, fiber.StatusBadRequest, "invalid application type")
	}
	status := c.Query("status", "")
	if status != "" && !models.ValidApplicationStatus(status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid application status")
	}

	apps, err := h.db.GetApplicationsWithJobs(c.Context(), user.ID, appType, status, queryInt(c, "limit", 50))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch applications")
	}

	return jsonSuccess(c, apps)
}

// Create records a manual application to a job and feeds it into pattern
// learning.
func (h *ApplicationHandler) Create(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		JobID       string `json:"job_id"`
		Notes       string `json:"notes"`
		CoverLetter string `json:"cover_letter"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	jobID, err := uuid.Parse(body.JobID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid job id")
	}

	if _, err := h.db.GetJobByID(c.Context(), jobID); err != nil {
		if errors.Is(err, db.ErrJobNotFound) {
			return jsonError(c, fiber.StatusNotFound, "job not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch job")
	}

	app := &models.Application{
		UserID:      user.ID,
		JobID:       jobID,
		Type:        models.ApplicationManual,
		Status:      models.StatusSubmitted,
		Notes:       body.Notes,
		CoverLetter: body.CoverLetter,
	}
	if err := h.db.CreateApplication(c.Context(), app); err != nil {
		if errors.Is(err, db.ErrDuplicateApplication) {
			return jsonError(c, fiber.StatusConflict, "you have already applied to this job")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create application")
	}

	// Manual applications teach the auto-apply engine what the user
	// actually goes for.
	if err := h.autoapply.Learn(c.Context(), user.ID, jobID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update application patterns")
	}

	return jsonSuccess(c, app)
}

// UpdateStatus moves an application through the pipeline. Transitions
// into a response status stamp the response time once.
func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid application id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !models.ValidApplicationStatus(body.Status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid application status")
	}

	app, err := h.db.GetApplicationByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrApplicationNotFound) {
			return jsonError(c, fiber.StatusNotFound, "application not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch application")
	}
	if app.UserID != user.ID {
		return jsonError(c, fiber.StatusNotFound, "application not found")
	}

	var responseAt *time.Time
	if models.IsResponseStatus(body.Status) && app.ResponseAt == nil {
		now := time.Now()
		responseAt = &now
	}

	if err := h.db.UpdateApplicationStatus(c.Context(), id, body.Status, responseAt); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update application")
	}

	app.Status = body.Status
	if responseAt != nil {
		app.ResponseAt = responseAt
	}
	return jsonSuccess(c, app)
}

// Stats returns the user's application counts by type and status.
func (h *ApplicationHandler) Stats(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := h.db.GetApplicationStats(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}

	return jsonSuccess(c, stats)
}
