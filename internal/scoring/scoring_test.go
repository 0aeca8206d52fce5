package scoring

import (
	"strings"
	"testing"

	"jobhunter/internal/models"
)

func containsKeyword(matched []string, kw string) bool {
	for _, m := range matched {
		if m == kw {
			return true
		}
	}
	return false
}

func TestScoreRelevantJob(t *testing.T) {
	job := &models.Job{
		Title: "Senior Data Scientist - Energy Systems",
		Description: "We are looking for a data scientist with experience in machine learning, " +
			"time series forecasting and power systems. Python and TensorFlow required.",
		Keywords: []string{"Python", "Machine Learning", "Forecasting"},
	}

	result := Score(job, nil)

	if result.Score <= 50 {
		t.Errorf("expected score above 50 for a highly relevant job, got %d", result.Score)
	}
	if len(result.MatchedKeywords) <= 3 {
		t.Errorf("expected more than 3 matched keywords, got %d: %v",
			len(result.MatchedKeywords), result.MatchedKeywords)
	}
	for _, want := range []string{"data scientist", "machine learning"} {
		if !containsKeyword(result.MatchedKeywords, want) {
			t.Errorf("expected %q in matched keywords, got %v", want, result.MatchedKeywords)
		}
	}
}

func TestScoreIrrelevantJob(t *testing.T) {
	job := &models.Job{
		Title:       "Marketing Manager",
		Description: "Lead our marketing campaigns and brand strategy.",
	}

	result := Score(job, nil)

	if result.Score >= 20 {
		t.Errorf("expected score below 20 for an irrelevant job, got %d", result.Score)
	}
}

func TestScoreUserSkillsBoost(t *testing.T) {
	job := &models.Job{
		Title:       "Data Analyst",
		Description: "Analyse datasets with SQL and build Grafana dashboards.",
	}

	base := Score(job, nil)
	boosted := Score(job, []string{"Grafana", "SQL"})

	if boosted.Score <= base.Score {
		t.Errorf("expected user skills to raise the score, got %d without and %d with skills",
			base.Score, boosted.Score)
	}
	if !containsKeyword(boosted.MatchedKeywords, "grafana") {
		t.Errorf("expected matched user skill %q, got %v", "grafana", boosted.MatchedKeywords)
	}
}

func TestScoreEmptyJob(t *testing.T) {
	result := Score(&models.Job{}, nil)

	if result.Score != 0 {
		t.Errorf("expected score 0 for an empty job, got %d", result.Score)
	}
	if len(result.MatchedKeywords) != 0 {
		t.Errorf("expected no matched keywords, got %v", result.MatchedKeywords)
	}
}

func TestScoreNilJob(t *testing.T) {
	result := Score(nil, []string{"python"})

	if result.Score != 0 || len(result.MatchedKeywords) != 0 {
		t.Errorf("expected zero result for nil job, got %+v", result)
	}
}

func TestScoreDeduplicatesMatches(t *testing.T) {
	job := &models.Job{
		Title:       "Python Developer",
		Description: "Python, python, and more Python.",
		Keywords:    []string{"python"},
	}

	result := Score(job, []string{"Python"})

	count := 0
	for _, kw := range result.MatchedKeywords {
		if kw == "python" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected %q listed once in matched keywords, got %v", "python", result.MatchedKeywords)
	}
}

func TestScoreClampedToHundred(t *testing.T) {
	// Stuff the description with every tier keyword to overflow the raw sum.
	all := append(append([]string{}, highPriorityKeywords...), mediumPriorityKeywords...)
	all = append(all, lowPriorityKeywords...)

	job := &models.Job{
		Title:       "Everything Engineer",
		Description: strings.Join(all, " "),
	}

	result := Score(job, []string{"python", "sql", "matlab"})

	if result.Score != 100 {
		t.Errorf("expected score clamped to 100, got %d", result.Score)
	}
}

func TestScoreJobKeywordContainsTierKeyword(t *testing.T) {
	// The tier keyword does not appear in the text, only inside one of the
	// job's own keywords.
	job := &models.Job{
		Title:       "Quantitative Role",
		Description: "Work on models.",
		Keywords:    []string{"advanced machine learning techniques"},
	}

	result := Score(job, nil)

	if !containsKeyword(result.MatchedKeywords, "machine learning") {
		t.Errorf("expected job keyword to satisfy tier keyword match, got %v", result.MatchedKeywords)
	}
}
