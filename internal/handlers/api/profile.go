package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"jobhunter/internal/db"
	"jobhunter/internal/engine"
	"jobhunter/internal/middleware"
	"jobhunter/internal/models"
	"jobhunter/internal/validation"
)

// ProfileHandler serves the user's CV profile and preferences.
type ProfileHandler struct {
	db     *db.DB
	engine *engine.Engine
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(database *db.DB, eng *engine.Engine) *ProfileHandler {
	return &ProfileHandler{db: database, engine: eng}
}

// Get returns the authenticated user's profile.
func (h *ProfileHandler) Get(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.db.GetUserProfile(c.Context(), user.ID)
	if err != nil {
		if errors.Is(err, db.ErrProfileNotFound) {
			return jsonError(c, fiber.StatusNotFound, "profile not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch profile")
	}

	return jsonSuccess(c, profile)
}

// Update creates or replaces the authenticated user's profile. Changed
// skills or thresholds affect future scoring, so a rescore is kicked off
// in the background.
func (h *ProfileHandler) Update(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		FullName           string   `json:"full_name"`
		Email              string   `json:"email"`
		Phone              string   `json:"phone"`
		Location           string   `json:"location"`
		CVSummary          string   `json:"cv_summary"`
		Skills             []string `json:"skills"`
		PreferredTitles    []string `json:"preferred_titles"`
		PreferredLocations []string `json:"preferred_locations"`
		ExperienceYears    int      `json:"experience_years"`
		Education          string   `json:"education"`
		NotificationEmail  string   `json:"notification_email"`
		AutoApplyEnabled   bool     `json:"auto_apply_enabled"`
		RelevanceThreshold int      `json:"relevance_threshold"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile := &models.UserProfile{
		UserID:             user.ID,
		FullName:           body.FullName,
		Email:              body.Email,
		Phone:              body.Phone,
		Location:           body.Location,
		CVSummary:          body.CVSummary,
		Skills:             validation.NormalizeKeywords(body.Skills),
		PreferredTitles:    body.PreferredTitles,
		PreferredLocations: body.PreferredLocations,
		ExperienceYears:    body.ExperienceYears,
		Education:          body.Education,
		NotificationEmail:  body.NotificationEmail,
		AutoApplyEnabled:   body.AutoApplyEnabled,
		RelevanceThreshold: body.RelevanceThreshold,
	}

	if valid, msg := validation.ValidateProfile(profile); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if err := h.db.UpsertUserProfile(c.Context(), profile); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save profile")
	}

	go func() {
		if _, err := h.engine.ScoreJobsForUser(context.Background(), user.ID, profile.Skills); err != nil {
			log.Printf("Failed to rescore jobs after profile update: %v", err)
		}
	}()

	return jsonSuccess(c, profile)
}
