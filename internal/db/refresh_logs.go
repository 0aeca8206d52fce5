package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobhunter/internal/models"
)

// LogRefresh records one refresh pass.
func (d *DB) LogRefresh(ctx context.Context, log *models.RefreshLog) error {
	query := `
		INSERT INTO refresh_logs (user_id, source, jobs_found, new_jobs, refreshed_at,
			next_refresh_at, status, error_message)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()), $6, $7, $8)
		RETURNING id, refreshed_at
	`

	var refreshedAt any
	if !log.RefreshedAt.IsZero() {
		refreshedAt = log.RefreshedAt
	}

	return d.Pool.QueryRow(ctx, query,
		log.UserID,
		log.Source,
		log.JobsFound,
		log.NewJobs,
		refreshedAt,
		log.NextRefreshAt,
		log.Status,
		log.ErrorMessage,
	).Scan(&log.ID, &log.RefreshedAt)
}

// GetLastRefresh retrieves the most recent refresh log, preferring the
// user's own runs but falling back to scheduled ones.
func (d *DB) GetLastRefresh(ctx context.Context, userID uuid.UUID) (*models.RefreshLog, error) {
	query := `
		SELECT id, user_id, source, jobs_found, new_jobs, refreshed_at, next_refresh_at, status, error_message
		FROM refresh_logs
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY refreshed_at DESC
		LIMIT 1
	`

	var log models.RefreshLog
	err := d.Pool.QueryRow(ctx, query, userID).Scan(
		&log.ID,
		&log.UserID,
		&log.Source,
		&log.JobsFound,
		&log.NewJobs,
		&log.RefreshedAt,
		&log.NextRefreshAt,
		&log.Status,
		&log.ErrorMessage,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}
