package models

import (
	"time"

	"github.com/google/uuid"
)

// Refresh status constants
const (
	RefreshSuccess = "success"
	RefreshPartial = "partial"
	RefreshFailed  = "failed"
)

// RefreshLog records one job refresh pass for monitoring.
type RefreshLog struct {
	ID            uuid.UUID  `json:"id"`
	UserID        *uuid.UUID `json:"user_id"` // nil for scheduled runs
	Source        string     `json:"source"`
	JobsFound     int        `json:"jobs_found"`
	NewJobs       int        `json:"new_jobs"`
	RefreshedAt   time.Time  `json:"refreshed_at"`
	NextRefreshAt *time.Time `json:"next_refresh_at"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"error_message"`
}
