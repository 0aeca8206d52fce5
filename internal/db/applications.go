package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"jobhunter/internal/models"
)

const applicationColumns = `id, user_id, job_id, application_type, status, applied_at,
	response_at, notes, cover_letter, created_at, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.JobID,
		&a.Type,
		&a.Status,
		&a.AppliedAt,
		&a.ResponseAt,
		&a.Notes,
		&a.CoverLetter,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication creates an application. The schema enforces one per
// (user, job); a conflict maps to ErrDuplicateApplication so callers can
// treat it as "already applied" rather than a fatal error.
func (d *DB) CreateApplication(ctx context.Context, app *models.Application) error {
	query := `
		INSERT INTO applications (user_id, job_id, application_type, status, applied_at, notes, cover_letter)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	status := app.Status
	if status == "" {
		status = models.StatusPending
	}
	appliedAt := app.AppliedAt
	if appliedAt.IsZero() {
		appliedAt = time.Now()
	}

	err := d.Pool.QueryRow(ctx, query,
		app.UserID,
		app.JobID,
		app.Type,
		status,
		appliedAt,
		app.Notes,
		app.CoverLetter,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateApplication
		}
		return err
	}

	app.Status = status
	app.AppliedAt = appliedAt
	return nil
}

// HasAppliedToJob reports whether the user already has an application for
// the job.
func (d *DB) HasAppliedToJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID,
	).Scan(&exists)
	return exists, err
}

// GetApplicationByID retrieves an application by its ID.
func (d *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	return scanApplication(d.Pool.QueryRow(ctx, query, id))
}

// UpdateApplicationStatus updates an application's status, stamping
// response_at when the status represents an employer response.
func (d *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string, responseAt *time.Time) error {
	query := `
		UPDATE applications
		SET status = $1, response_at = COALESCE($2, response_at), updated_at = NOW()
		WHERE id = $3
	`
	result, err := d.Pool.Exec(ctx, query, status, responseAt, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// GetApplicationsWithJobs retrieves a user's applications joined with their
// jobs, newest first, optionally filtered by type and status.
func (d *DB) GetApplicationsWithJobs(ctx context.Context, userID uuid.UUID, appType, status string, limit int) ([]models.ApplicationWithJob, error) {
	sql := `
		SELECT a.id, a.user_id, a.job_id, a.application_type, a.status, a.applied_at,
			a.response_at, a.notes, a.cover_letter, a.created_at, a.updated_at,
			j.id, j.external_id, j.source, j.title, j.company, j.location, j.description,
			j.requirements, j.salary, j.job_type, j.url, j.posted_at, j.scraped_at,
			j.is_active, j.keywords, j.created_at, j.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.user_id = $1
	`
	args := []any{userID}

	if appType != "" {
		sql += ` AND a.application_type = $` + strconv.Itoa(len(args)+1)
		args = append(args, appType)
	}
	if status != "" {
		sql += ` AND a.status = $` + strconv.Itoa(len(args)+1)
		args = append(args, status)
	}

	sql += ` ORDER BY a.applied_at DESC`

	if limit <= 0 {
		limit = 50
	}
	sql += ` LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit)

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.ApplicationWithJob
	for rows.Next() {
		var awj models.ApplicationWithJob
		if err := rows.Scan(
			&awj.Application.ID,
			&awj.Application.UserID,
			&awj.Application.JobID,
			&awj.Application.Type,
			&awj.Application.Status,
			&awj.Application.AppliedAt,
			&awj.Application.ResponseAt,
			&awj.Application.Notes,
			&awj.Application.CoverLetter,
			&awj.Application.CreatedAt,
			&awj.Application.UpdatedAt,
			&awj.Job.ID,
			&awj.Job.ExternalID,
			&awj.Job.Source,
			&awj.Job.Title,
			&awj.Job.Company,
			&awj.Job.Location,
			&awj.Job.Description,
			&awj.Job.Requirements,
			&awj.Job.Salary,
			&awj.Job.JobType,
			&awj.Job.URL,
			&awj.Job.PostedAt,
			&awj.Job.ScrapedAt,
			&awj.Job.IsActive,
			&awj.Job.Keywords,
			&awj.Job.CreatedAt,
			&awj.Job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, awj)
	}

	return results, rows.Err()
}

// GetApplicationStats aggregates a user's applications by type and status.
func (d *DB) GetApplicationStats(ctx context.Context, userID uuid.UUID) (*models.ApplicationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE application_type = 'manual'),
			COUNT(*) FILTER (WHERE application_type = 'automatic'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'submitted'),
			COUNT(*) FILTER (WHERE status = 'viewed'),
			COUNT(*) FILTER (WHERE status = 'interview'),
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'rejected')
		FROM applications
		WHERE user_id = $1
	`

	var stats models.ApplicationStats
	err := d.Pool.QueryRow(ctx, query, userID).Scan(
		&stats.Total,
		&stats.Manual,
		&stats.Automatic,
		&stats.Pending,
		&stats.Submitted,
		&stats.Viewed,
		&stats.Interview,
		&stats.Accepted,
		&stats.Rejected,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetRecentApplications retrieves a user's applications from the last N
// days, newest first.
func (d *DB) GetRecentApplications(ctx context.Context, userID uuid.UUID, days int) ([]models.Application, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = $1 AND applied_at >= $2
		ORDER BY applied_at DESC
	`

	rows, err := d.Pool.Query(ctx, query, userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.JobID,
			&a.Type,
			&a.Status,
			&a.AppliedAt,
			&a.ResponseAt,
			&a.Notes,
			&a.CoverLetter,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

// ApplicationCount is one (type, status) bucket for metrics export.
type ApplicationCount struct {
	Type   string
	Status string
	Count  int64
}

// GetApplicationCounts returns application counts grouped by type and
// status across all users, for metrics export.
func (d *DB) GetApplicationCounts(ctx context.Context) ([]ApplicationCount, error) {
	rows, err := d.Pool.Query(ctx,
		`SELECT application_type, status, COUNT(*) FROM applications GROUP BY application_type, status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []ApplicationCount
	for rows.Next() {
		var c ApplicationCount
		if err := rows.Scan(&c.Type, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
