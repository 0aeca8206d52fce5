package models

import (
	"time"

	"github.com/google/uuid"
)

// Application type constants
const (
	ApplicationManual    = "manual"
	ApplicationAutomatic = "automatic"
)

// Application status constants
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusViewed    = "viewed"
	StatusInterview = "interview"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

// ApplicationStatuses lists every valid application status.
var ApplicationStatuses = []string{
	StatusPending,
	StatusSubmitted,
	StatusViewed,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
}

// ValidApplicationStatus returns true if the given status is known.
func ValidApplicationStatus(status string) bool {
	for _, s := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Application tracks one application of a user to a job. At most one per
// (user, job).
type Application struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	JobID       uuid.UUID  `json:"job_id"`
	Type        string     `json:"application_type"` // manual, automatic
	Status      string     `json:"status"`
	AppliedAt   time.Time  `json:"applied_at"`
	ResponseAt  *time.Time `json:"response_at"`
	Notes       string     `json:"notes"`
	CoverLetter string     `json:"cover_letter"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsResponseStatus returns true for statuses that represent an employer
// response rather than the submission pipeline.
func (a *Application) IsResponseStatus() bool {
	return IsResponseStatus(a.Status)
}

// IsResponseStatus returns true for statuses past the submission pipeline.
func IsResponseStatus(status string) bool {
	return status != StatusPending && status != StatusSubmitted
}

// ApplicationWithJob joins an application with its job posting for listings.
type ApplicationWithJob struct {
	Application Application `json:"application"`
	Job         Job         `json:"job"`
}

// ApplicationStats aggregates a user's applications by type and status.
type ApplicationStats struct {
	Total     int `json:"total"`
	Manual    int `json:"manual"`
	Automatic int `json:"automatic"`
	Pending   int `json:"pending"`
	Submitted int `json:"submitted"`
	Viewed    int `json:"viewed"`
	Interview int `json:"interview"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
}
