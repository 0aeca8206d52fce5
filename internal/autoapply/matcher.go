package autoapply

import (
	"strings"

	"jobhunter/internal/models"
)

// Thresholds on match confidence. A pattern matches at or above
// matchThreshold; the engine only submits automatically at or above
// autoApplyThreshold.
const (
	matchThreshold     = 60
	autoApplyThreshold = 70
)

// MatchResult reports whether a job matched one of the user's patterns,
// which pattern, and how confident the match is.
type MatchResult struct {
	Matches    bool
	Pattern    *models.ApplicationPattern
	Confidence int
}

// Match scans the patterns in order and returns the first one scoring at
// or above the match threshold. When nothing matches, confidence is
// reported as zero regardless of how close the best pattern came.
func Match(job *models.Job, patterns []models.ApplicationPattern) MatchResult {
	if job == nil {
		return MatchResult{}
	}

	for i := range patterns {
		p := &patterns[i]
		score := patternScore(job, p)
		if score >= matchThreshold {
			confidence := score
			if confidence > 100 {
				confidence = 100
			}
			return MatchResult{Matches: true, Pattern: p, Confidence: confidence}
		}
	}

	return MatchResult{}
}

// patternScore rates how well a job fits one pattern. Keyword overlap
// dominates, with company, location and description bonuses on top.
func patternScore(job *models.Job, p *models.ApplicationPattern) int {
	score := 0
	text := strings.ToLower(job.Title + " " + job.Description)

	// Overlap counts job keywords covered by the pattern, not the other
	// way around: several pattern keywords hitting one job keyword is a
	// single overlap.
	overlap := 0
	for _, jk := range job.Keywords {
		jkLower := strings.ToLower(jk)
		for _, pk := range p.Keywords {
			pkLower := strings.ToLower(pk)
			if strings.Contains(jkLower, pkLower) || strings.Contains(pkLower, jkLower) {
				overlap++
				break
			}
		}
	}
	switch {
	case overlap >= 2:
		score += 40
	case overlap == 1:
		score += 20
	}

	company := strings.ToLower(job.Company)
	for _, c := range p.Companies {
		if strings.ToLower(c) == company {
			score += 30
			break
		}
	}

	location := strings.ToLower(job.Location)
	for _, l := range p.Locations {
		if strings.Contains(location, strings.ToLower(l)) {
			score += 20
			break
		}
	}

	textHits := 0
	for _, pk := range p.Keywords {
		if strings.Contains(text, strings.ToLower(pk)) {
			textHits++
		}
	}
	bonus := textHits * 10
	if bonus > 30 {
		bonus = 30
	}
	score += bonus

	return score
}
