package validation

import (
	"net/mail"
	"strings"

	"jobhunter/internal/models"
)

// ValidateEmail checks an email address for basic RFC 5322 shape.
func ValidateEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// ValidateThreshold checks a relevance threshold is within the score
// scale.
func ValidateThreshold(threshold int) bool {
	return threshold >= 0 && threshold <= 100
}

// ValidateProfile checks the fields of a user profile submission.
// Returns false with a message on the first problem found.
func ValidateProfile(p *models.UserProfile) (bool, string) {
	if p == nil {
		return false, "Profile is required"
	}
	if len(p.FullName) > 200 {
		return false, "Full name must be at most 200 characters"
	}
	if !ValidateThreshold(p.RelevanceThreshold) {
		return false, "Relevance threshold must be between 0 and 100"
	}
	if p.NotificationEmail != "" && !ValidateEmail(p.NotificationEmail) {
		return false, "Notification email is not a valid address"
	}
	if p.ExperienceYears < 0 || p.ExperienceYears > 80 {
		return false, "Experience years must be between 0 and 80"
	}
	return true, ""
}

// ValidateSearchFilter checks the fields of a saved search filter.
func ValidateSearchFilter(f *models.SearchFilter) (bool, string) {
	if f == nil {
		return false, "Filter is required"
	}
	if strings.TrimSpace(f.Name) == "" {
		return false, "Filter name is required"
	}
	if len(f.Name) > 100 {
		return false, "Filter name must be at most 100 characters"
	}
	if !ValidateThreshold(f.MinRelevanceScore) {
		return false, "Minimum relevance score must be between 0 and 100"
	}
	if f.MaxPostingAge < 0 {
		return false, "Maximum posting age cannot be negative"
	}
	for _, source := range f.Sources {
		if !models.ValidSource(source) {
			return false, "Unknown job source: " + source
		}
	}
	return true, ""
}

// NormalizeKeywords trims and lowercases a keyword list, dropping
// empties.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
