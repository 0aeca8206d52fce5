package models

import (
	"time"

	"github.com/google/uuid"
)

// Email notification status constants
const (
	EmailPending = "pending"
	EmailSent    = "sent"
	EmailFailed  = "failed"
)

// EmailNotification logs one job digest email sent (or attempted) for a
// user.
type EmailNotification struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	JobCount       int       `json:"job_count"`
	SentAt         time.Time `json:"sent_at"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
