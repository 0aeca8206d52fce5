// Package engine aggregates job postings, keeps per-user relevance scores
// current and exposes the matching queries built on top of them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"jobhunter/internal/db"
	"jobhunter/internal/models"
	"jobhunter/internal/scoring"
)

const scoringBatchLimit = 500

// Engine refreshes the job inventory and scores it for users.
type Engine struct {
	db       *db.DB
	interval time.Duration
	rng      *rand.Rand
}

// New creates a job engine. The interval drives the advertised next
// refresh time and the background loop.
func New(database *db.DB, interval time.Duration) *Engine {
	return &Engine{
		db:       database,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RefreshJobs pulls one batch of postings from all boards and inserts the
// ones not seen before, keyed by (source, external id). The pass is
// recorded in the refresh log either way; userID is nil for scheduled
// runs.
func (e *Engine) RefreshJobs(ctx context.Context, userID *uuid.UUID) (*models.RefreshResult, error) {
	batch := generateSimulatedJobs(e.rng)

	newJobs := 0
	for i := range batch {
		job := &batch[i]
		_, err := e.db.GetJobByExternalID(ctx, job.ExternalID, job.Source)
		if err == nil {
			continue
		}
		if !errors.Is(err, db.ErrJobNotFound) {
			e.logFailedRefresh(ctx, userID, err)
			return nil, fmt.Errorf("refresh jobs: %w", err)
		}

		err = e.db.InsertJob(ctx, job)
		if errors.Is(err, db.ErrDuplicateJob) {
			continue
		}
		if err != nil {
			e.logFailedRefresh(ctx, userID, err)
			return nil, fmt.Errorf("refresh jobs: %w", err)
		}
		newJobs++
	}

	next := time.Now().Add(e.interval)
	log := &models.RefreshLog{
		UserID:        userID,
		Source:        "all",
		JobsFound:     len(batch),
		NewJobs:       newJobs,
		NextRefreshAt: &next,
		Status:        models.RefreshSuccess,
	}
	if err := e.db.LogRefresh(ctx, log); err != nil {
		return nil, fmt.Errorf("refresh jobs: %w", err)
	}

	return &models.RefreshResult{JobsFound: len(batch), NewJobs: newJobs}, nil
}

func (e *Engine) logFailedRefresh(ctx context.Context, userID *uuid.UUID, cause error) {
	log := &models.RefreshLog{
		UserID:       userID,
		Source:       "all",
		Status:       models.RefreshFailed,
		ErrorMessage: cause.Error(),
	}
	// Best effort: the original failure is what gets reported.
	_ = e.db.LogRefresh(ctx, log)
}

// ScoreJobsForUser recomputes relevance scores for one user across the
// active inventory. Returns the number of jobs scored.
func (e *Engine) ScoreJobsForUser(ctx context.Context, userID uuid.UUID, userSkills []string) (int, error) {
	jobs, err := e.db.GetActiveJobs(ctx, scoringBatchLimit)
	if err != nil {
		return 0, fmt.Errorf("score jobs: %w", err)
	}

	scored := 0
	for i := range jobs {
		result := scoring.Score(&jobs[i], userSkills)
		err := e.db.UpsertJobScore(ctx, &models.JobScore{
			JobID:           jobs[i].ID,
			UserID:          userID,
			RelevanceScore:  result.Score,
			MatchedKeywords: result.MatchedKeywords,
		})
		if err != nil {
			return scored, fmt.Errorf("score jobs: %w", err)
		}
		scored++
	}

	return scored, nil
}

// RescoreAllProfiles refreshes scores for every user with a profile.
// Returns the number of profiles processed; a per-user failure aborts the
// pass.
func (e *Engine) RescoreAllProfiles(ctx context.Context) (int, error) {
	profiles, err := e.db.GetAllProfiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("rescore profiles: %w", err)
	}

	for i, p := range profiles {
		if _, err := e.ScoreJobsForUser(ctx, p.UserID, p.Skills); err != nil {
			return i, err
		}
	}
	return len(profiles), nil
}

// GetMatchingJobs retrieves scored jobs for a user, most relevant first.
func (e *Engine) GetMatchingJobs(ctx context.Context, userID uuid.UUID, opts db.JobsWithScoresOptions) ([]models.JobWithScore, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	return e.db.GetJobsWithScores(ctx, userID, opts)
}

// NewJobsSince returns scored jobs scraped after the user's last recorded
// refresh. Without a refresh log entry, one interval back is assumed.
func (e *Engine) NewJobsSince(ctx context.Context, userID uuid.UUID, minScore int) ([]models.JobWithScore, error) {
	lastRefresh, err := e.db.GetLastRefresh(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("new jobs: %w", err)
	}

	since := time.Now().Add(-e.interval)
	if lastRefresh != nil {
		since = lastRefresh.RefreshedAt
	}

	jobs, err := e.db.GetJobsWithScores(ctx, userID, db.JobsWithScoresOptions{
		MinScore: minScore,
		Limit:    100,
	})
	if err != nil {
		return nil, fmt.Errorf("new jobs: %w", err)
	}

	fresh := []models.JobWithScore{}
	for _, j := range jobs {
		if j.Job.ScrapedAt.After(since) {
			fresh = append(fresh, j)
		}
	}
	return fresh, nil
}
