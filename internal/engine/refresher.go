package engine

import (
	"context"
	"log"
	"time"
)

// Refresher runs scheduled job refreshes in the background.
type Refresher struct {
	engine   *Engine
	interval time.Duration
}

// NewRefresher creates a background refresher driving the given engine.
func NewRefresher(engine *Engine, interval time.Duration) *Refresher {
	return &Refresher{engine: engine, interval: interval}
}

// Start begins the refresh loop. It runs once immediately, then on every
// tick until the context is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Job refresher started (interval: %v)", r.interval)

	r.run(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Job refresher stopped")
			return
		case <-ticker.C:
			r.run(ctx)
		}
	}
}

func (r *Refresher) run(ctx context.Context) {
	// Scheduled runs carry no user id in the refresh log.
	result, err := r.engine.RefreshJobs(ctx, nil)
	if err != nil {
		log.Printf("Job refresher: refresh failed: %v", err)
		return
	}
	log.Printf("Job refresher: %d jobs found, %d new", result.JobsFound, result.NewJobs)

	if result.NewJobs == 0 {
		return
	}
	rescored, err := r.engine.RescoreAllProfiles(ctx)
	if err != nil {
		log.Printf("Job refresher: rescoring failed: %v", err)
		return
	}
	log.Printf("Job refresher: rescored %d profiles", rescored)
}
