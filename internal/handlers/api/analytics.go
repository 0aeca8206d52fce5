package api

import (
	"github.com/gofiber/fiber/v3"

	"jobhunter/internal/db"
	"jobhunter/internal/middleware"
	"jobhunter/internal/models"
)

// AnalyticsHandler serves the dashboard aggregates.
type AnalyticsHandler struct {
	db *db.DB
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(database *db.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: database}
}

// Overview aggregates the user's application activity. Success rate is
// the share of interviews and offers among employer responses.
func (h *AnalyticsHandler) Overview(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := h.db.GetApplicationStats(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}

	overview := models.AnalyticsOverview{
		TotalApplications:     stats.Total,
		ManualApplications:    stats.Manual,
		AutomaticApplications: stats.Automatic,
		PendingApplications:   stats.Pending + stats.Submitted,
		InterviewsScheduled:   stats.Interview,
		AcceptedOffers:        stats.Accepted,
		RejectedApplications:  stats.Rejected,
		RecentApplications:    []models.ApplicationWithJob{},
	}

	responses := stats.Viewed + stats.Interview + stats.Accepted + stats.Rejected
	if responses > 0 {
		overview.SuccessRate = (stats.Interview + stats.Accepted) * 100 / responses
	}

	lastRefresh, err := h.db.GetLastRefresh(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch refresh state")
	}
	if lastRefresh != nil {
		overview.LastRefresh = &lastRefresh.RefreshedAt
		overview.NextRefresh = lastRefresh.NextRefreshAt
	}

	recent, err := h.db.GetApplicationsWithJobs(c.Context(), user.ID, "", "", 5)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recent applications")
	}
	if recent != nil {
		overview.RecentApplications = recent
	}

	return jsonSuccess(c, overview)
}

// Trend returns daily application counts over the requested window,
// default 30 days.
func (h *AnalyticsHandler) Trend(c fiber.Ctx) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days := queryInt(c, "days", 30)
	if days <= 0 || days > 365 {
		return jsonError(c, fiber.StatusBadRequest, "days must be between 1 and 365")
	}

	apps, err := h.db.GetRecentApplications(c.Context(), user.ID, days)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch applications")
	}

	byDate := make(map[string]*models.TrendPoint)
	order := []string{}
	for _, app := range apps {
		date := app.AppliedAt.Format("2006-01-02")
		point, ok := byDate[date]
		if !ok {
			point = &models.TrendPoint{Date: date}
			byDate[date] = point
			order = append(order, date)
		}
		point.Total++
		if app.Type == models.ApplicationAutomatic {
			point.Automatic++
		} else {
			point.Manual++
		}
	}

	trend := make([]models.TrendPoint, 0, len(order))
	for _, date := range order {
		trend = append(trend, *byDate[date])
	}

	return jsonSuccess(c, trend)
}
