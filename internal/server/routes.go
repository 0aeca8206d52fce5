package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobhunter/internal/autoapply"
	"jobhunter/internal/db"
	"jobhunter/internal/email"
	"jobhunter/internal/engine"
	"jobhunter/internal/handlers"
	"jobhunter/internal/handlers/api"
	"jobhunter/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, eng *engine.Engine, notifier *email.Notifier) error {
	authMiddleware := middleware.NewAuthMiddleware(database)
	autoApplyEngine := autoapply.NewEngine(database)

	profileHandler := api.NewProfileHandler(database, eng)
	jobHandler := api.NewJobHandler(database, eng)
	applicationHandler := api.NewApplicationHandler(database, autoApplyEngine)
	autoApplyHandler := api.NewAutoApplyHandler(database, autoApplyEngine)
	filterHandler := api.NewFilterHandler(database)
	notificationHandler := api.NewNotificationHandler(database, notifier)
	analyticsHandler := api.NewAnalyticsHandler(database)
	refreshHandler := api.NewRefreshHandler(database)
	healthHandler := api.NewHealthHandler(database)

	// Auth routes - OIDC is required for all API access
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. All users must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Operational endpoints
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes - all authenticated
	v1 := s.App.Group("/api", authMiddleware.RequireAuth)

	v1.Get("/profile", profileHandler.Get)
	v1.Put("/profile", profileHandler.Update)

	v1.Get("/jobs", jobHandler.List)
	v1.Get("/jobs/:id", jobHandler.Get)
	v1.Post("/jobs/refresh", jobHandler.Refresh)
	v1.Post("/jobs/score", jobHandler.ScoreAll)
	v1.Get("/jobs-refresh/status", refreshHandler.Status)

	v1.Get("/applications", applicationHandler.List)
	v1.Post("/applications", applicationHandler.Create)
	v1.Patch("/applications/:id/status", applicationHandler.UpdateStatus)
	v1.Get("/applications/stats", applicationHandler.Stats)

	v1.Post("/auto-apply/run", autoApplyHandler.Run)
	v1.Get("/auto-apply/candidates", autoApplyHandler.Candidates)
	v1.Get("/auto-apply/patterns", autoApplyHandler.Patterns)
	v1.Delete("/auto-apply/patterns/:id", autoApplyHandler.DeactivatePattern)

	v1.Get("/filters", filterHandler.List)
	v1.Post("/filters", filterHandler.Create)
	v1.Delete("/filters/:id", filterHandler.Delete)

	v1.Post("/notifications/check", notificationHandler.Check)
	v1.Get("/notifications", notificationHandler.History)
	v1.Post("/notifications/test", notificationHandler.Test)

	v1.Get("/analytics/overview", analyticsHandler.Overview)
	v1.Get("/analytics/trend", analyticsHandler.Trend)

	return nil
}
