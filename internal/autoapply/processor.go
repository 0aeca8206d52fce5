package autoapply

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jobhunter/internal/db"
	"jobhunter/internal/models"
)

// maxPerRun caps how many automatic applications one run may submit.
const maxPerRun = 5

const (
	processCandidateLimit = 100
	previewCandidateLimit = 50
)

// ProcessAutoApply runs one auto-apply pass for a user. Scored jobs above
// the profile threshold are matched against the user's patterns; confident
// matches become automatic applications, capped per run. Jobs remaining
// after the cap is hit are left for the next pass and not counted.
func (e *Engine) ProcessAutoApply(ctx context.Context, userID uuid.UUID) (*models.AutoApplyResult, error) {
	result := &models.AutoApplyResult{}

	profile, err := e.store.GetUserProfile(ctx, userID)
	if errors.Is(err, db.ErrProfileNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auto-apply: %w", err)
	}
	if !profile.AutoApplyEnabled {
		return result, nil
	}

	patterns, err := e.store.GetApplicationPatterns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auto-apply: %w", err)
	}
	if len(patterns) == 0 {
		return result, nil
	}

	candidates, err := e.store.GetJobsWithScores(ctx, userID, db.JobsWithScoresOptions{
		MinScore: profile.MinScore(),
		Limit:    processCandidateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("auto-apply: %w", err)
	}

	for _, c := range candidates {
		applied, err := e.store.HasAppliedToJob(ctx, userID, c.Job.ID)
		if err != nil {
			return nil, fmt.Errorf("auto-apply: %w", err)
		}
		if applied {
			result.Skipped++
			continue
		}

		match := Match(&c.Job, patterns)
		if !match.Matches || match.Confidence < autoApplyThreshold {
			result.Skipped++
			continue
		}

		app := &models.Application{
			UserID: userID,
			JobID:  c.Job.ID,
			Type:   models.ApplicationAutomatic,
			Status: models.StatusSubmitted,
			Notes: fmt.Sprintf("Auto-applied with %d%% pattern match confidence. Relevance score: %d",
				match.Confidence, c.Score),
		}
		err = e.store.CreateApplication(ctx, app)
		if errors.Is(err, db.ErrDuplicateApplication) {
			result.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("auto-apply: %w", err)
		}

		result.Applied++
		if result.Applied >= maxPerRun {
			break
		}
	}

	return result, nil
}

// GetCandidates previews the jobs the auto-apply engine is considering
// for a user, including matches below the submission threshold.
func (e *Engine) GetCandidates(ctx context.Context, userID uuid.UUID) ([]models.AutoApplyCandidate, error) {
	profile, err := e.store.GetUserProfile(ctx, userID)
	if errors.Is(err, db.ErrProfileNotFound) {
		return []models.AutoApplyCandidate{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auto-apply candidates: %w", err)
	}

	patterns, err := e.store.GetApplicationPatterns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("auto-apply candidates: %w", err)
	}
	if len(patterns) == 0 {
		return []models.AutoApplyCandidate{}, nil
	}

	jobs, err := e.store.GetJobsWithScores(ctx, userID, db.JobsWithScoresOptions{
		MinScore: profile.MinScore(),
		Limit:    previewCandidateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("auto-apply candidates: %w", err)
	}

	candidates := []models.AutoApplyCandidate{}
	for _, j := range jobs {
		applied, err := e.store.HasAppliedToJob(ctx, userID, j.Job.ID)
		if err != nil {
			return nil, fmt.Errorf("auto-apply candidates: %w", err)
		}
		if applied {
			continue
		}

		match := Match(&j.Job, patterns)
		if !match.Matches {
			continue
		}

		candidates = append(candidates, models.AutoApplyCandidate{
			Job:                 j.Job,
			Score:               j.Score,
			MatchedKeywords:     j.MatchedKeywords,
			AutoApplyConfidence: match.Confidence,
			WouldAutoApply:      match.Confidence >= autoApplyThreshold,
		})
	}

	return candidates, nil
}
