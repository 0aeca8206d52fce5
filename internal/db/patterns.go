package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobhunter/internal/models"
)

const patternColumns = `id, user_id, pattern_type, keywords, companies, locations,
	min_relevance_score, application_count, success_rate, is_active, created_at, updated_at`

func scanPatterns(rows pgx.Rows) ([]models.ApplicationPattern, error) {
	defer rows.Close()

	var patterns []models.ApplicationPattern
	for rows.Next() {
		var p models.ApplicationPattern
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.PatternType,
			&p.Keywords,
			&p.Companies,
			&p.Locations,
			&p.MinRelevanceScore,
			&p.ApplicationCount,
			&p.SuccessRate,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}

	return patterns, rows.Err()
}

// GetApplicationPatterns retrieves a user's active patterns, oldest first
// so the matcher scans them in learning order.
func (d *DB) GetApplicationPatterns(ctx context.Context, userID uuid.UUID) ([]models.ApplicationPattern, error) {
	query := `
		SELECT ` + patternColumns + `
		FROM application_patterns
		WHERE user_id = $1 AND is_active
		ORDER BY created_at ASC
	`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanPatterns(rows)
}

// SaveApplicationPattern creates a new pattern.
func (d *DB) SaveApplicationPattern(ctx context.Context, p *models.ApplicationPattern) error {
	query := `
		INSERT INTO application_patterns (user_id, pattern_type, keywords, companies,
			locations, min_relevance_score, application_count, success_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		p.UserID,
		p.PatternType,
		emptyIfNil(p.Keywords),
		emptyIfNil(p.Companies),
		emptyIfNil(p.Locations),
		p.MinRelevanceScore,
		p.ApplicationCount,
		p.SuccessRate,
		p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// UpdateApplicationPattern persists the grown keyword/company/location sets
// and application count of a learned pattern. Success rate is maintained
// elsewhere and left untouched.
func (d *DB) UpdateApplicationPattern(ctx context.Context, p *models.ApplicationPattern) error {
	query := `
		UPDATE application_patterns
		SET keywords = $1, companies = $2, locations = $3, application_count = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		emptyIfNil(p.Keywords),
		emptyIfNil(p.Companies),
		emptyIfNil(p.Locations),
		p.ApplicationCount,
		p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPatternNotFound
	}
	return err
}

// UpdatePatternStats updates a pattern's application count and success
// rate.
func (d *DB) UpdatePatternStats(ctx context.Context, patternID uuid.UUID, applicationCount int, successRate float64) error {
	query := `
		UPDATE application_patterns
		SET application_count = $1, success_rate = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := d.Pool.Exec(ctx, query, applicationCount, successRate, patternID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPatternNotFound
	}
	return nil
}

// DeactivatePattern deactivates a pattern. Patterns are never deleted.
func (d *DB) DeactivatePattern(ctx context.Context, patternID uuid.UUID) error {
	query := `UPDATE application_patterns SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	result, err := d.Pool.Exec(ctx, query, patternID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPatternNotFound
	}
	return nil
}
