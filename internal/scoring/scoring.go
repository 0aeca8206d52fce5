// Package scoring computes per-user relevance scores for job postings.
// Scoring is pure and deterministic: the same job and skill set always
// produce the same result, so jobs can be rescored at any time.
package scoring

import (
	"strings"

	"jobhunter/internal/models"
)

// Result is the outcome of scoring one job for one user.
type Result struct {
	Score           int
	MatchedKeywords []string
}

// Score rates how relevant a job is for a user on a 0-100 scale. Tiered
// profile keywords contribute 10, 5, or 2 points each; every user skill
// found in the posting adds 8 more. A keyword hits when it appears in the
// job's title or description, or when one of the job's own keywords
// contains it.
func Score(job *models.Job, userSkills []string) Result {
	if job == nil {
		return Result{MatchedKeywords: []string{}}
	}

	text := strings.ToLower(job.Title + " " + job.Description)

	jobKeywords := make([]string, 0, len(job.Keywords))
	for _, kw := range job.Keywords {
		jobKeywords = append(jobKeywords, strings.ToLower(kw))
	}

	score := 0
	matched := []string{}
	seen := make(map[string]bool)

	addMatch := func(kw string, points int) {
		score += points
		if !seen[kw] {
			seen[kw] = true
			matched = append(matched, kw)
		}
	}

	tiers := []struct {
		keywords []string
		points   int
	}{
		{highPriorityKeywords, highPriorityPoints},
		{mediumPriorityKeywords, mediumPriorityPoints},
		{lowPriorityKeywords, lowPriorityPoints},
	}

	for _, tier := range tiers {
		for _, kw := range tier.keywords {
			if keywordHits(kw, text, jobKeywords) {
				addMatch(kw, tier.points)
			}
		}
	}

	for _, skill := range userSkills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" {
			continue
		}
		if strings.Contains(text, s) {
			addMatch(s, userSkillPoints)
		}
	}

	if score > 100 {
		score = 100
	}

	return Result{Score: score, MatchedKeywords: matched}
}

func keywordHits(kw, text string, jobKeywords []string) bool {
	if strings.Contains(text, kw) {
		return true
	}
	for _, jk := range jobKeywords {
		if strings.Contains(jk, kw) {
			return true
		}
	}
	return false
}
