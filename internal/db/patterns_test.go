package db

import (
	"context"
	"testing"

	"jobhunter/internal/models"
)

func TestApplicationPatternLifecycle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, db, "patterns")

	pattern := &models.ApplicationPattern{
		UserID:            userID,
		PatternType:       models.PatternLearned,
		Keywords:          []string{"python", "forecasting"},
		Companies:         []string{"Siemens Energy"},
		Locations:         []string{"Berlin, Germany"},
		MinRelevanceScore: models.DefaultPatternMinScore,
		ApplicationCount:  1,
		IsActive:          true,
	}
	if err := db.SaveApplicationPattern(ctx, pattern); err != nil {
		t.Fatalf("SaveApplicationPattern: %v", err)
	}

	// Grow the sets and bump the count; success rate stays at zero.
	pattern.Keywords = append(pattern.Keywords, "grid")
	pattern.Companies = append(pattern.Companies, "Vattenfall")
	pattern.ApplicationCount = 2
	if err := db.UpdateApplicationPattern(ctx, pattern); err != nil {
		t.Fatalf("UpdateApplicationPattern: %v", err)
	}

	patterns, err := db.GetApplicationPatterns(ctx, userID)
	if err != nil {
		t.Fatalf("GetApplicationPatterns: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	got := patterns[0]
	if len(got.Keywords) != 3 || len(got.Companies) != 2 {
		t.Errorf("expected grown sets, got %v / %v", got.Keywords, got.Companies)
	}
	if got.ApplicationCount != 2 {
		t.Errorf("expected application count 2, got %d", got.ApplicationCount)
	}
	if got.SuccessRate != 0 {
		t.Errorf("expected success rate untouched, got %v", got.SuccessRate)
	}

	if err := db.UpdatePatternStats(ctx, pattern.ID, 3, 66.7); err != nil {
		t.Fatalf("UpdatePatternStats: %v", err)
	}
	patterns, _ = db.GetApplicationPatterns(ctx, userID)
	if patterns[0].SuccessRate != 66.7 {
		t.Errorf("expected success rate 66.7, got %v", patterns[0].SuccessRate)
	}

	// Deactivated patterns leave the active set but keep their row.
	if err := db.DeactivatePattern(ctx, pattern.ID); err != nil {
		t.Fatalf("DeactivatePattern: %v", err)
	}
	patterns, err = db.GetApplicationPatterns(ctx, userID)
	if err != nil {
		t.Fatalf("GetApplicationPatterns after deactivate: %v", err)
	}
	if len(patterns) != 0 {
		t.Errorf("expected no active patterns, got %d", len(patterns))
	}
}

func TestGetApplicationPatternsOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := createTestUser(t, db, "ordering")

	for _, kw := range []string{"first", "second", "third"} {
		p := &models.ApplicationPattern{
			UserID:            userID,
			PatternType:       models.PatternLearned,
			Keywords:          []string{kw},
			MinRelevanceScore: models.DefaultPatternMinScore,
			ApplicationCount:  1,
			IsActive:          true,
		}
		if err := db.SaveApplicationPattern(ctx, p); err != nil {
			t.Fatalf("SaveApplicationPattern: %v", err)
		}
	}

	patterns, err := db.GetApplicationPatterns(ctx, userID)
	if err != nil {
		t.Fatalf("GetApplicationPatterns: %v", err)
	}
	if len(patterns) != 3 {
		t.Fatalf("expected 3 patterns, got %d", len(patterns))
	}
	// Oldest first, so the matcher scans in learning order.
	if patterns[0].Keywords[0] != "first" || patterns[2].Keywords[0] != "third" {
		t.Errorf("expected creation order, got %v", patterns)
	}
}
