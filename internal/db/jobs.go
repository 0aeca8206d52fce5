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

// jobColumns is the standard column list for job queries.
const jobColumns = `id, external_id, source, title, company, location, description,
	requirements, salary, job_type, url, posted_at, scraped_at, is_active, keywords,
	created_at, updated_at`

// scanJob scans a row into a Job struct.
func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID,
		&job.ExternalID,
		&job.Source,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Description,
		&job.Requirements,
		&job.Salary,
		&job.JobType,
		&job.URL,
		&job.PostedAt,
		&job.ScrapedAt,
		&job.IsActive,
		&job.Keywords,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// scanJobs scans multiple rows into a slice of Jobs.
func scanJobs(rows pgx.Rows) ([]models.Job, error) {
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID,
			&job.ExternalID,
			&job.Source,
			&job.Title,
			&job.Company,
			&job.Location,
			&job.Description,
			&job.Requirements,
			&job.Salary,
			&job.JobType,
			&job.URL,
			&job.PostedAt,
			&job.ScrapedAt,
			&job.IsActive,
			&job.Keywords,
			&job.CreatedAt,
			&job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// InsertJob inserts a new job posting.
func (d *DB) InsertJob(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (external_id, source, title, company, location, description,
			requirements, salary, job_type, url, posted_at, is_active, keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, scraped_at, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		job.ExternalID,
		job.Source,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.Requirements,
		job.Salary,
		job.JobType,
		job.URL,
		job.PostedAt,
		job.IsActive,
		emptyIfNil(job.Keywords),
	).Scan(&job.ID, &job.ScrapedAt, &job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateJob
		}
		return err
	}

	return nil
}

// GetJobByID retrieves a job by its ID.
func (d *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(d.Pool.QueryRow(ctx, query, id))
}

// GetJobByExternalID retrieves a job by its board-assigned identifier.
func (d *DB) GetJobByExternalID(ctx context.Context, externalID, source string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE external_id = $1 AND source = $2`
	return scanJob(d.Pool.QueryRow(ctx, query, externalID, source))
}

// GetActiveJobs retrieves active jobs, newest first.
func (d *DB) GetActiveJobs(ctx context.Context, limit int) ([]models.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE is_active
		ORDER BY posted_at DESC NULLS LAST
		LIMIT $1
	`
	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanJobs(rows)
}

// CountActiveJobs returns the number of active postings, for metrics
// export.
func (d *DB) CountActiveJobs(ctx context.Context) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active`).Scan(&count)
	return count, err
}

// SetJobActive flips the active flag on a job.
func (d *DB) SetJobActive(ctx context.Context, jobID uuid.UUID, active bool) error {
	query := `UPDATE jobs SET is_active = $1, updated_at = NOW() WHERE id = $2`
	result, err := d.Pool.Exec(ctx, query, active, jobID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// JobsWithScoresOptions filters GetJobsWithScores.
type JobsWithScoresOptions struct {
	MinScore int
	Sources  []string
	MaxAge   time.Duration // zero means no age filter
	Limit    int
	Offset   int
}

// GetJobsWithScores retrieves active jobs joined with the user's relevance
// scores, most relevant first.
func (d *DB) GetJobsWithScores(ctx context.Context, userID uuid.UUID, opts JobsWithScoresOptions) ([]models.JobWithScore, error) {
	sql := `
		SELECT j.id, j.external_id, j.source, j.title, j.company, j.location,
			j.description, j.requirements, j.salary, j.job_type, j.url, j.posted_at,
			j.scraped_at, j.is_active, j.keywords, j.created_at, j.updated_at,
			s.relevance_score, s.matched_keywords
		FROM job_scores s
		JOIN jobs j ON j.id = s.job_id
		WHERE s.user_id = $1 AND j.is_active AND s.relevance_score >= $2
	`
	args := []any{userID, opts.MinScore}

	if len(opts.Sources) > 0 {
		sql += ` AND j.source = ANY($` + strconv.Itoa(len(args)+1) + `)`
		args = append(args, opts.Sources)
	}
	if opts.MaxAge > 0 {
		sql += ` AND j.posted_at >= $` + strconv.Itoa(len(args)+1)
		args = append(args, time.Now().Add(-opts.MaxAge))
	}

	sql += ` ORDER BY s.relevance_score DESC, j.posted_at DESC NULLS LAST`

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	sql += ` LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit)

	if opts.Offset > 0 {
		sql += ` OFFSET $` + strconv.Itoa(len(args)+1)
		args = append(args, opts.Offset)
	}

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.JobWithScore
	for rows.Next() {
		var jws models.JobWithScore
		if err := rows.Scan(
			&jws.Job.ID,
			&jws.Job.ExternalID,
			&jws.Job.Source,
			&jws.Job.Title,
			&jws.Job.Company,
			&jws.Job.Location,
			&jws.Job.Description,
			&jws.Job.Requirements,
			&jws.Job.Salary,
			&jws.Job.JobType,
			&jws.Job.URL,
			&jws.Job.PostedAt,
			&jws.Job.ScrapedAt,
			&jws.Job.IsActive,
			&jws.Job.Keywords,
			&jws.Job.CreatedAt,
			&jws.Job.UpdatedAt,
			&jws.Score,
			&jws.MatchedKeywords,
		); err != nil {
			return nil, err
		}
		results = append(results, jws)
	}

	return results, rows.Err()
}
