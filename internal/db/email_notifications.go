package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobhunter/internal/models"
)

// LogEmailNotification records one digest email attempt.
func (d *DB) LogEmailNotification(ctx context.Context, n *models.EmailNotification) error {
	query := `
		INSERT INTO email_notifications (user_id, recipient_email, subject, job_count, sent_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	sentAt := n.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}

	err := d.Pool.QueryRow(ctx, query,
		n.UserID,
		n.RecipientEmail,
		n.Subject,
		n.JobCount,
		sentAt,
		n.Status,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return err
	}

	n.SentAt = sentAt
	return nil
}

// GetEmailNotifications retrieves a user's notification history, newest
// first.
func (d *DB) GetEmailNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.EmailNotification, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, user_id, recipient_email, subject, job_count, sent_at, status, created_at
		FROM email_notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.EmailNotification
	for rows.Next() {
		var n models.EmailNotification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.RecipientEmail,
			&n.Subject,
			&n.JobCount,
			&n.SentAt,
			&n.Status,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}
