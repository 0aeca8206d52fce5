package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobhunter/internal/config"
	"jobhunter/internal/db"
	"jobhunter/internal/models"
)

type fakeStore struct {
	profile *models.UserProfile
	jobs    []models.JobWithScore
	logged  []models.EmailNotification
}

func (f *fakeStore) GetUserProfile(_ context.Context, _ uuid.UUID) (*models.UserProfile, error) {
	if f.profile == nil {
		return nil, db.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeStore) GetJobsWithScores(_ context.Context, _ uuid.UUID, opts db.JobsWithScoresOptions) ([]models.JobWithScore, error) {
	out := []models.JobWithScore{}
	for _, j := range f.jobs {
		if j.Score >= opts.MinScore {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeStore) LogEmailNotification(_ context.Context, n *models.EmailNotification) error {
	n.ID = uuid.New()
	f.logged = append(f.logged, *n)
	return nil
}

func recentJob(title string, score int, age time.Duration) models.JobWithScore {
	postedAt := time.Now().Add(-age)
	return models.JobWithScore{
		Job: models.Job{
			ID:       uuid.New(),
			Title:    title,
			Company:  "Acme",
			Location: "Berlin, Germany",
			URL:      "https://example.com/jobs/1",
			PostedAt: &postedAt,
		},
		Score: score,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		RefreshInterval:          5 * time.Hour,
		DefaultNotificationEmail: "fallback@example.com",
		SiteTitle:                "Test",
		BaseURL:                  "https://test.example.com",
	}
}

func TestNewNotifier(t *testing.T) {
	notifier := NewNotifier(testConfig(), nil)

	if notifier == nil {
		t.Fatal("NewNotifier returned nil")
	}
	if notifier.service == nil {
		t.Error("Notifier service is nil")
	}
	if notifier.templates == nil {
		t.Error("Notifier templates is nil")
	}
}

func TestCheckAndNotify_NoRecentJobs(t *testing.T) {
	store := &fakeStore{
		jobs: []models.JobWithScore{
			recentJob("Old Job", 90, 48*time.Hour),
		},
	}
	notifier := NewNotifier(testConfig(), store)

	result, err := notifier.CheckAndNotify(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("CheckAndNotify: %v", err)
	}
	if result.Notified || result.JobCount != 0 {
		t.Errorf("expected no notification for stale jobs, got %+v", result)
	}
	if len(store.logged) != 0 {
		t.Errorf("expected nothing logged, got %d entries", len(store.logged))
	}
}

func TestCheckAndNotify_BelowThreshold(t *testing.T) {
	store := &fakeStore{
		profile: &models.UserProfile{RelevanceThreshold: 80},
		jobs: []models.JobWithScore{
			recentJob("Borderline Job", 60, time.Hour),
		},
	}
	notifier := NewNotifier(testConfig(), store)

	result, err := notifier.CheckAndNotify(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("CheckAndNotify: %v", err)
	}
	if result.JobCount != 0 {
		t.Errorf("expected jobs below the threshold excluded, got %+v", result)
	}
}

func TestCheckAndNotify_EmailDisabled(t *testing.T) {
	// SMTP unconfigured: matching jobs are reported but nothing is sent
	// or logged.
	store := &fakeStore{
		jobs: []models.JobWithScore{
			recentJob("Fresh Job", 75, time.Hour),
		},
	}
	notifier := NewNotifier(testConfig(), store)

	result, err := notifier.CheckAndNotify(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("CheckAndNotify: %v", err)
	}
	if result.Notified {
		t.Error("expected no notification with SMTP unconfigured")
	}
	if result.JobCount != 1 {
		t.Errorf("expected 1 matching job reported, got %d", result.JobCount)
	}
	if len(store.logged) != 0 {
		t.Errorf("expected no log entry with SMTP unconfigured, got %d", len(store.logged))
	}
}

func TestSendTest_Disabled(t *testing.T) {
	notifier := NewNotifier(testConfig(), &fakeStore{})

	if err := notifier.SendTest(context.Background(), uuid.New()); err == nil {
		t.Error("expected an error when SMTP is unconfigured")
	}
}

func TestJobDigestTemplate(t *testing.T) {
	templates := NewTemplates(testConfig())

	jobs := []models.JobWithScore{
		recentJob("Data Scientist", 90, time.Hour),
		recentJob("Energy Analyst", 70, 2*time.Hour),
	}

	subject, htmlBody, textBody := templates.JobDigest(jobs)

	if !strings.Contains(subject, "2 New Matching Jobs") {
		t.Errorf("unexpected subject %q", subject)
	}
	for _, want := range []string{"Data Scientist", "Energy Analyst", "90%", "Average Relevance"} {
		if !strings.Contains(textBody, want) {
			t.Errorf("expected %q in text body", want)
		}
	}
	if !strings.Contains(textBody, "Average Relevance: 80%") {
		t.Errorf("expected average of 80%%, got:\n%s", textBody)
	}
	if !strings.Contains(textBody, "Highest Match: 90%") {
		t.Errorf("expected highest match of 90%%, got:\n%s", textBody)
	}
	if !strings.Contains(htmlBody, "<html>") {
		t.Error("expected an HTML body")
	}
}

func TestJobDigestTemplateEmpty(t *testing.T) {
	templates := NewTemplates(testConfig())

	_, _, textBody := templates.JobDigest(nil)
	if !strings.Contains(textBody, "No new matching jobs") {
		t.Errorf("unexpected empty digest body %q", textBody)
	}
}
