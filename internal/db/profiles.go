package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"jobhunter/internal/models"
)

const profileColumns = `id, user_id, full_name, email, phone, location, cv_summary,
	skills, preferred_titles, preferred_locations, experience_years, education,
	notification_email, auto_apply_enabled, relevance_threshold, created_at, updated_at`

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.Location,
		&p.CVSummary,
		&p.Skills,
		&p.PreferredTitles,
		&p.PreferredLocations,
		&p.ExperienceYears,
		&p.Education,
		&p.NotificationEmail,
		&p.AutoApplyEnabled,
		&p.RelevanceThreshold,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetUserProfile retrieves the profile for a user.
func (d *DB) GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	return scanProfile(d.Pool.QueryRow(ctx, query, userID))
}

// GetAllProfiles retrieves every user profile, oldest first. Used by the
// background refresher to keep everyone's scores current.
func (d *DB) GetAllProfiles(ctx context.Context) ([]models.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles ORDER BY created_at`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// UpsertUserProfile creates or updates the profile for a user.
func (d *DB) UpsertUserProfile(ctx context.Context, p *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, full_name, email, phone, location, cv_summary,
			skills, preferred_titles, preferred_locations, experience_years, education,
			notification_email, auto_apply_enabled, relevance_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			cv_summary = EXCLUDED.cv_summary,
			skills = EXCLUDED.skills,
			preferred_titles = EXCLUDED.preferred_titles,
			preferred_locations = EXCLUDED.preferred_locations,
			experience_years = EXCLUDED.experience_years,
			education = EXCLUDED.education,
			notification_email = EXCLUDED.notification_email,
			auto_apply_enabled = EXCLUDED.auto_apply_enabled,
			relevance_threshold = EXCLUDED.relevance_threshold,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		p.UserID,
		p.FullName,
		p.Email,
		p.Phone,
		p.Location,
		p.CVSummary,
		emptyIfNil(p.Skills),
		emptyIfNil(p.PreferredTitles),
		emptyIfNil(p.PreferredLocations),
		p.ExperienceYears,
		p.Education,
		p.NotificationEmail,
		p.AutoApplyEnabled,
		p.RelevanceThreshold,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// emptyIfNil keeps nil slices out of text[] columns declared NOT NULL.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
