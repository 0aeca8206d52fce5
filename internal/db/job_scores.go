package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobhunter/internal/models"
)

// UpsertJobScore writes the relevance score for a (job, user) pair. The
// latest computation wins; no history is kept.
func (d *DB) UpsertJobScore(ctx context.Context, score *models.JobScore) error {
	query := `
		INSERT INTO job_scores (job_id, user_id, relevance_score, matched_keywords, calculated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (job_id, user_id) DO UPDATE SET
			relevance_score = EXCLUDED.relevance_score,
			matched_keywords = EXCLUDED.matched_keywords,
			calculated_at = NOW()
		RETURNING id, calculated_at
	`

	return d.Pool.QueryRow(ctx, query,
		score.JobID,
		score.UserID,
		score.RelevanceScore,
		emptyIfNil(score.MatchedKeywords),
	).Scan(&score.ID, &score.CalculatedAt)
}

// GetJobScore retrieves the score of one job for one user.
func (d *DB) GetJobScore(ctx context.Context, jobID, userID uuid.UUID) (*models.JobScore, error) {
	query := `
		SELECT id, job_id, user_id, relevance_score, matched_keywords, calculated_at
		FROM job_scores
		WHERE job_id = $1 AND user_id = $2
	`

	var s models.JobScore
	err := d.Pool.QueryRow(ctx, query, jobID, userID).Scan(
		&s.ID,
		&s.JobID,
		&s.UserID,
		&s.RelevanceScore,
		&s.MatchedKeywords,
		&s.CalculatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
