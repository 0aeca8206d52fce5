package engine_test

import (
	"context"
	"testing"
	"time"

	"jobhunter/internal/db"
	"jobhunter/internal/engine"
	"jobhunter/internal/models"
	"jobhunter/internal/testutil"
)

func TestRefreshJobsInsertsAndLogs(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	eng := engine.New(database, 5*time.Hour)
	userID := testutil.CreateTestUser(t, database, "refresher")

	result, err := eng.RefreshJobs(ctx, &userID)
	if err != nil {
		t.Fatalf("RefreshJobs: %v", err)
	}
	if result.JobsFound == 0 || result.NewJobs == 0 {
		t.Errorf("expected jobs found and inserted, got %+v", result)
	}

	jobs, err := database.GetActiveJobs(ctx, 100)
	if err != nil {
		t.Fatalf("GetActiveJobs: %v", err)
	}
	if len(jobs) != result.NewJobs {
		t.Errorf("expected %d active jobs, got %d", result.NewJobs, len(jobs))
	}

	last, err := database.GetLastRefresh(ctx, userID)
	if err != nil {
		t.Fatalf("GetLastRefresh: %v", err)
	}
	if last == nil {
		t.Fatal("expected a refresh log entry")
	}
	if last.Status != models.RefreshSuccess {
		t.Errorf("expected success status, got %q", last.Status)
	}
	if last.NextRefreshAt == nil || !last.NextRefreshAt.After(time.Now()) {
		t.Error("expected the next refresh scheduled in the future")
	}
}

func TestScoreJobsForUser(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	eng := engine.New(database, 5*time.Hour)
	userID := testutil.CreateTestUser(t, database, "scored")

	relevant := testutil.CreateTestJob(t, database, "score-1", models.SourceLinkedIn,
		"Data Scientist - Machine Learning", []string{"python", "machine learning"})
	testutil.CreateTestJob(t, database, "score-2", models.SourceIndeed,
		"Office Administrator", nil)

	count, err := eng.ScoreJobsForUser(ctx, userID, []string{"python"})
	if err != nil {
		t.Fatalf("ScoreJobsForUser: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 jobs scored, got %d", count)
	}

	score, err := database.GetJobScore(ctx, relevant.ID, userID)
	if err != nil {
		t.Fatalf("GetJobScore: %v", err)
	}
	if score.RelevanceScore <= 20 {
		t.Errorf("expected a substantial score for the relevant job, got %d", score.RelevanceScore)
	}
	if len(score.MatchedKeywords) == 0 {
		t.Error("expected matched keywords persisted")
	}
}

func TestGetMatchingJobsDefaultLimit(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	eng := engine.New(database, 5*time.Hour)
	userID := testutil.CreateTestUser(t, database, "matcher")

	testutil.CreateTestJob(t, database, "match-1", models.SourceLinkedIn,
		"Data Scientist", []string{"python"})
	if _, err := eng.ScoreJobsForUser(ctx, userID, nil); err != nil {
		t.Fatalf("ScoreJobsForUser: %v", err)
	}

	jobs, err := eng.GetMatchingJobs(ctx, userID, db.JobsWithScoresOptions{})
	if err != nil {
		t.Fatalf("GetMatchingJobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("expected 1 matching job, got %d", len(jobs))
	}
}
