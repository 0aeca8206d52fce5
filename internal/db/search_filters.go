package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobhunter/internal/models"
)

const filterColumns = `id, user_id, name, keywords, locations, sources,
	min_relevance_score, max_posting_age, is_default, created_at, updated_at`

func scanFilter(row pgx.Row) (*models.SearchFilter, error) {
	var f models.SearchFilter
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.Name,
		&f.Keywords,
		&f.Locations,
		&f.Sources,
		&f.MinRelevanceScore,
		&f.MaxPostingAge,
		&f.IsDefault,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFilterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetSearchFilters retrieves all saved filters for a user.
func (d *DB) GetSearchFilters(ctx context.Context, userID uuid.UUID) ([]models.SearchFilter, error) {
	query := `SELECT ` + filterColumns + ` FROM search_filters WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filters []models.SearchFilter
	for rows.Next() {
		var f models.SearchFilter
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.Name,
			&f.Keywords,
			&f.Locations,
			&f.Sources,
			&f.MinRelevanceScore,
			&f.MaxPostingAge,
			&f.IsDefault,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}

	return filters, rows.Err()
}

// SaveSearchFilter creates a saved filter. Marking a filter default clears
// the flag on the user's other filters.
func (d *DB) SaveSearchFilter(ctx context.Context, f *models.SearchFilter) error {
	if f.IsDefault {
		if _, err := d.Pool.Exec(ctx,
			`UPDATE search_filters SET is_default = FALSE WHERE user_id = $1`, f.UserID); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO search_filters (user_id, name, keywords, locations, sources,
			min_relevance_score, max_posting_age, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		f.UserID,
		f.Name,
		emptyIfNil(f.Keywords),
		emptyIfNil(f.Locations),
		emptyIfNil(f.Sources),
		f.MinRelevanceScore,
		f.MaxPostingAge,
		f.IsDefault,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// GetDefaultFilter retrieves the user's default filter.
func (d *DB) GetDefaultFilter(ctx context.Context, userID uuid.UUID) (*models.SearchFilter, error) {
	query := `SELECT ` + filterColumns + ` FROM search_filters WHERE user_id = $1 AND is_default LIMIT 1`
	return scanFilter(d.Pool.QueryRow(ctx, query, userID))
}

// DeleteSearchFilter deletes a filter owned by the user.
func (d *DB) DeleteSearchFilter(ctx context.Context, id, userID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx,
		`DELETE FROM search_filters WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrFilterNotFound
	}
	return nil
}
