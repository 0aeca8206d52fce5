package autoapply

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"jobhunter/internal/db"
	"jobhunter/internal/models"
)

// Learn folds a manually applied job into the user's patterns. A job
// sharing at least two keywords with an existing pattern grows that
// pattern's sets; otherwise a fresh pattern is created from the job.
// A missing job is a no-op.
func (e *Engine) Learn(ctx context.Context, userID, jobID uuid.UUID) error {
	job, err := e.store.GetJobByID(ctx, jobID)
	if errors.Is(err, db.ErrJobNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("learn pattern: %w", err)
	}

	patterns, err := e.store.GetApplicationPatterns(ctx, userID)
	if err != nil {
		return fmt.Errorf("learn pattern: %w", err)
	}

	for i := range patterns {
		p := &patterns[i]
		if sharedKeywords(job.Keywords, p.Keywords) < 2 {
			continue
		}

		p.Keywords = union(p.Keywords, job.Keywords)
		p.Companies = union(p.Companies, []string{job.Company})
		p.Locations = union(p.Locations, []string{job.Location})
		p.ApplicationCount++

		if err := e.store.UpdateApplicationPattern(ctx, p); err != nil {
			return fmt.Errorf("learn pattern: %w", err)
		}
		return nil
	}

	pattern := &models.ApplicationPattern{
		UserID:            userID,
		PatternType:       models.PatternLearned,
		Keywords:          union(nil, job.Keywords),
		Companies:         union(nil, []string{job.Company}),
		Locations:         union(nil, []string{job.Location}),
		MinRelevanceScore: models.DefaultPatternMinScore,
		ApplicationCount:  1,
		IsActive:          true,
	}
	if err := e.store.SaveApplicationPattern(ctx, pattern); err != nil {
		return fmt.Errorf("learn pattern: %w", err)
	}
	return nil
}

// sharedKeywords counts exact keyword overlap between a job and a pattern.
func sharedKeywords(jobKeywords, patternKeywords []string) int {
	count := 0
	for _, jk := range jobKeywords {
		for _, pk := range patternKeywords {
			if jk == pk {
				count++
				break
			}
		}
	}
	return count
}

// union appends the missing elements of extra to base, preserving order
// and skipping empties.
func union(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range extra {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
