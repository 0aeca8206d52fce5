package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchFilter is a saved job search filter for a user.
type SearchFilter struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Name              string    `json:"name"`
	Keywords          []string  `json:"keywords"`
	Locations         []string  `json:"locations"`
	Sources           []string  `json:"sources"`
	MinRelevanceScore int       `json:"min_relevance_score"`
	MaxPostingAge     int       `json:"max_posting_age"` // hours
	IsDefault         bool      `json:"is_default"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
