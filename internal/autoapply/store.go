// Package autoapply matches scored jobs against learned application
// patterns and submits automatic applications on the user's behalf.
package autoapply

import (
	"context"

	"github.com/google/uuid"

	"jobhunter/internal/db"
	"jobhunter/internal/models"
)

// Store is the persistence surface the auto-apply engine needs. *db.DB
// satisfies it; tests use an in-memory fake.
type Store interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	GetJobsWithScores(ctx context.Context, userID uuid.UUID, opts db.JobsWithScoresOptions) ([]models.JobWithScore, error)
	GetApplicationPatterns(ctx context.Context, userID uuid.UUID) ([]models.ApplicationPattern, error)
	SaveApplicationPattern(ctx context.Context, p *models.ApplicationPattern) error
	UpdateApplicationPattern(ctx context.Context, p *models.ApplicationPattern) error
	HasAppliedToJob(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	CreateApplication(ctx context.Context, app *models.Application) error
}

// Engine runs pattern matching, learning and automatic application
// submission against a Store.
type Engine struct {
	store Store
}

// NewEngine creates an auto-apply engine backed by the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}
