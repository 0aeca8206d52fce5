package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobhunter/internal/config"
	"jobhunter/internal/db"
	"jobhunter/internal/email"
	"jobhunter/internal/engine"
	"jobhunter/internal/metrics"
	"jobhunter/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Metrics collector
	metrics.Init(database)

	// Job engine and notifier
	jobEngine := engine.New(database, cfg.RefreshInterval)
	notifier := email.NewNotifier(cfg, database)

	// Background refresher
	if cfg.RefreshEnabled {
		refresher := engine.NewRefresher(jobEngine, cfg.RefreshInterval)
		go refresher.Start(ctx)
	} else {
		log.Println("Background job refresher disabled. Set REFRESH_ENABLED to enable.")
	}

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, jobEngine, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
