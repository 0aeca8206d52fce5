package models

import (
	"time"

	"github.com/google/uuid"
)

// PatternLearned marks patterns created by the learner from manual
// applications.
const PatternLearned = "learned"

// DefaultPatternMinScore is the minimum relevance threshold seeded into
// newly learned patterns.
const DefaultPatternMinScore = 60

// ApplicationPattern is a per-user cluster of keywords, companies and
// locations learned from manual applications. Its sets only grow across
// learning events; patterns are deactivated, never deleted.
type ApplicationPattern struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	PatternType       string    `json:"pattern_type"`
	Keywords          []string  `json:"keywords"`
	Companies         []string  `json:"companies"`
	Locations         []string  `json:"locations"`
	MinRelevanceScore int       `json:"min_relevance_score"`
	ApplicationCount  int       `json:"application_count"`
	SuccessRate       float64   `json:"success_rate"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
