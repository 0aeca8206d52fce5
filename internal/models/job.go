package models

import (
	"time"

	"github.com/google/uuid"
)

// Job source constants. Postings are aggregated from a fixed set of boards.
const (
	SourceLinkedIn      = "linkedin"
	SourceIndeed        = "indeed"
	SourceStepStone     = "stepstone"
	SourceEnergyJobline = "energy_jobline"
	SourceDataCareer    = "datacareer"
)

// Sources lists every supported job board.
var Sources = []string{
	SourceLinkedIn,
	SourceIndeed,
	SourceStepStone,
	SourceEnergyJobline,
	SourceDataCareer,
}

// ValidSource returns true if the given source is a known job board.
func ValidSource(source string) bool {
	for _, s := range Sources {
		if s == source {
			return true
		}
	}
	return false
}

// Job represents an aggregated job posting. Immutable once scored except
// for IsActive.
type Job struct {
	ID           uuid.UUID  `json:"id"`
	ExternalID   string     `json:"external_id"` // board-assigned identifier, for dedup
	Source       string     `json:"source"`
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Salary       string     `json:"salary"`
	JobType      string     `json:"job_type"`
	URL          string     `json:"url"`
	PostedAt     *time.Time `json:"posted_at"`
	ScrapedAt    time.Time  `json:"scraped_at"`
	IsActive     bool       `json:"is_active"`
	Keywords     []string   `json:"keywords"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// JobScore is the relevance score of a job for one user. One row per
// (job, user); rescoring overwrites it.
type JobScore struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"job_id"`
	UserID          uuid.UUID `json:"user_id"`
	RelevanceScore  int       `json:"relevance_score"`
	MatchedKeywords []string  `json:"matched_keywords"`
	CalculatedAt    time.Time `json:"calculated_at"`
}

// JobWithScore pairs a job with its per-user relevance score.
type JobWithScore struct {
	Job             Job      `json:"job"`
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
}
