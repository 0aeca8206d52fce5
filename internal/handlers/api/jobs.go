package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"jobhunter/internal/db"
	"jobhunter/internal/engine"
	"jobhunter/internal/middleware"
	"jobhunter/internal/models"
)

// JobHandler serves the scored job feed.
type JobHandler struct {
	db     *db.DB
	engine *engine.Engine
}

// NewJobHandler creates a job handler.
func NewJobHandler(database *db.DB, eng *engine.Engine) *JobHandler {
	return &JobHandler{db: database, engine: eng}
}

// List returns the user's scored jobs, most relevant first. Filters come
// from query parameters or, absent those, the user's default saved
// filter.
func (h *JobHandler) List(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	opts := db.JobsWithScoresOptions{
		MinScore: queryInt(c, "min_score", 0),
		Limit:    queryInt(c, "limit", 50),
		Offset:   queryInt(c, "offset", 0),
	}
	if sources := c.Query("sources", ""); sources != "" {
		for _, s := range strings.Split(sources, ",") {
			s = strings.TrimSpace(s)
			if !models.ValidSource(s) {
				return jsonError(c, fiber.StatusBadRequest, "unknown job source: "+s)
			}
			opts.Sources = append(opts.Sources, s)
		}
	}
	if maxAge := queryInt(c, "max_age_hours", 0); maxAge > 0 {
		opts.MaxAge = time.Duration(maxAge) * time.Hour
	}

	// Fall back to the user's default saved filter when no explicit
	// filters were given.
	if opts.MinScore == 0 && len(opts.Sources) == 0 && opts.MaxAge == 0 {
		if filter, err := h.db.GetDefaultFilter(c.Context(), user.ID); err == nil {
			opts.MinScore = filter.MinRelevanceScore
			opts.Sources = filter.Sources
			if filter.MaxPostingAge > 0 {
				opts.MaxAge = time.Duration(filter.MaxPostingAge) * time.Hour
			}
		}
	}

	jobs, err := h.db.GetJobsWithScores(c.Context(), user.ID, opts)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch jobs")
	}

	return jsonSuccess(c, jobs)
}

// Get returns a single job with the user's score and application state.
func (h *JobHandler) Get(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid job id")
	}

	job, err := h.db.GetJobByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrJobNotFound) {
			return jsonError(c, fiber.StatusNotFound, "job not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch job")
	}

	detail := models.JobDetail{Job: *job, MatchedKeywords: []string{}}

	score, err := h.db.GetJobScore(c.Context(), job.ID, user.ID)
	if err == nil {
		detail.RelevanceScore = score.RelevanceScore
		detail.MatchedKeywords = score.MatchedKeywords
	} else if !errors.Is(err, db.ErrScoreNotFound) {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch job score")
	}

	applied, err := h.db.HasAppliedToJob(c.Context(), user.ID, job.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch application state")
	}
	detail.HasApplied = applied

	return jsonSuccess(c, detail)
}

// Refresh pulls a fresh batch of postings and rescores them for the
// requesting user.
func (h *JobHandler) Refresh(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.engine.RefreshJobs(c.Context(), &user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to refresh jobs")
	}

	scored, err := h.rescoreForUser(c, user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to score jobs")
	}

	return jsonSuccess(c, fiber.Map{
		"jobs_found": result.JobsFound,
		"new_jobs":   result.NewJobs,
		"scored":     scored,
	})
}

// ScoreAll recomputes the user's relevance scores across the inventory.
func (h *JobHandler) ScoreAll(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	scored, err := h.rescoreForUser(c, user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to score jobs")
	}

	return jsonSuccess(c, fiber.Map{"scored": scored})
}

func (h *JobHandler) rescoreForUser(c fiber.Ctx, userID uuid.UUID) (int, error) {
	var skills []string
	if profile, err := h.db.GetUserProfile(c.Context(), userID); err == nil {
		skills = profile.Skills
	}
	return h.engine.ScoreJobsForUser(c.Context(), userID, skills)
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(c fiber.Ctx, key string, fallback int) int {
	if value := c.Query(key, ""); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
