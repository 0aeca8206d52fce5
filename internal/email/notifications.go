package email

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"jobhunter/internal/config"
	"jobhunter/internal/db"
	"jobhunter/internal/models"
)

// NotificationStore is the persistence surface the notifier needs.
type NotificationStore interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	GetJobsWithScores(ctx context.Context, userID uuid.UUID, opts db.JobsWithScoresOptions) ([]models.JobWithScore, error)
	LogEmailNotification(ctx context.Context, n *models.EmailNotification) error
}

// CheckResult reports the outcome of one notification check.
type CheckResult struct {
	Notified bool `json:"notified"`
	JobCount int  `json:"job_count"`
}

// Notifier sends job digest emails when fresh matches appear.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
	store     NotificationStore
}

// NewNotifier creates a job digest notifier.
func NewNotifier(cfg *config.Config, store NotificationStore) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
		store:     store,
	}
}

// CheckAndNotify looks for jobs posted within the refresh window that
// score at or above the user's threshold and emails a digest when any
// are found. Every send attempt is logged for the notification history.
func (n *Notifier) CheckAndNotify(ctx context.Context, userID uuid.UUID) (*CheckResult, error) {
	minScore := models.DefaultRelevanceThreshold
	recipient := n.cfg.DefaultNotificationEmail

	profile, err := n.store.GetUserProfile(ctx, userID)
	if err != nil && !errors.Is(err, db.ErrProfileNotFound) {
		return nil, fmt.Errorf("notification check: %w", err)
	}
	if profile != nil {
		minScore = profile.MinScore()
		if profile.NotificationEmail != "" {
			recipient = profile.NotificationEmail
		}
	}

	jobs, err := n.store.GetJobsWithScores(ctx, userID, db.JobsWithScoresOptions{
		MinScore: minScore,
		Limit:    50,
	})
	if err != nil {
		return nil, fmt.Errorf("notification check: %w", err)
	}

	cutoff := time.Now().Add(-n.cfg.RefreshInterval)
	recent := []models.JobWithScore{}
	for _, j := range jobs {
		if j.Job.PostedAt != nil && !j.Job.PostedAt.Before(cutoff) {
			recent = append(recent, j)
		}
	}

	if len(recent) == 0 {
		return &CheckResult{}, nil
	}
	if !n.service.IsEnabled() {
		return &CheckResult{JobCount: len(recent)}, nil
	}
	if recipient == "" {
		log.Printf("No notification recipient configured for user %s", userID)
		return &CheckResult{JobCount: len(recent)}, nil
	}

	subject, htmlBody, textBody := n.templates.JobDigest(recent)
	sendErr := n.service.SendEmail([]string{recipient}, subject, htmlBody, textBody)

	status := models.EmailSent
	if sendErr != nil {
		status = models.EmailFailed
		log.Printf("Failed to send job digest to %s: %v", recipient, sendErr)
	}

	entry := &models.EmailNotification{
		UserID:         userID,
		RecipientEmail: recipient,
		Subject:        subject,
		JobCount:       len(recent),
		Status:         status,
	}
	if err := n.store.LogEmailNotification(ctx, entry); err != nil {
		return nil, fmt.Errorf("notification check: %w", err)
	}

	return &CheckResult{Notified: sendErr == nil, JobCount: len(recent)}, nil
}

// SendTest sends a test notification to the user's configured recipient.
func (n *Notifier) SendTest(ctx context.Context, userID uuid.UUID) error {
	if !n.service.IsEnabled() {
		return errors.New("email is not configured")
	}

	recipient := n.cfg.DefaultNotificationEmail

	profile, err := n.store.GetUserProfile(ctx, userID)
	if err != nil && !errors.Is(err, db.ErrProfileNotFound) {
		return fmt.Errorf("test notification: %w", err)
	}
	if profile != nil && profile.NotificationEmail != "" {
		recipient = profile.NotificationEmail
	}
	if recipient == "" {
		return errors.New("no notification email configured")
	}

	subject, htmlBody, textBody := n.templates.TestEmail()
	if err := n.service.SendEmail([]string{recipient}, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("test notification: %w", err)
	}
	return nil
}
