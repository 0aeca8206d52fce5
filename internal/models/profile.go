package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRelevanceThreshold is the minimum relevance score used for
// matching when a profile does not set one.
const DefaultRelevanceThreshold = 50

// UserProfile holds a user's CV data and job-search preferences.
type UserProfile struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Location           string    `json:"location"`
	CVSummary          string    `json:"cv_summary"`
	Skills             []string  `json:"skills"`
	PreferredTitles    []string  `json:"preferred_titles"`
	PreferredLocations []string  `json:"preferred_locations"`
	ExperienceYears    int       `json:"experience_years"`
	Education          string    `json:"education"`
	NotificationEmail  string    `json:"notification_email"`
	AutoApplyEnabled   bool      `json:"auto_apply_enabled"`
	RelevanceThreshold int       `json:"relevance_threshold"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MinScore returns the profile's relevance threshold, falling back to the
// default when unset.
func (p *UserProfile) MinScore() int {
	if p.RelevanceThreshold <= 0 {
		return DefaultRelevanceThreshold
	}
	return p.RelevanceThreshold
}
