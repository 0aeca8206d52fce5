package validation

import (
	"reflect"
	"testing"

	"jobhunter/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.de", true},
		{"", false},
		{"not-an-email", false},
		{"missing@domain@example.com", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.UserProfile
		want    bool
	}{
		{"nil profile", nil, false},
		{"empty profile", &models.UserProfile{}, true},
		{"valid", &models.UserProfile{
			FullName:           "Jane Doe",
			NotificationEmail:  "jane@example.com",
			RelevanceThreshold: 60,
			ExperienceYears:    5,
		}, true},
		{"threshold too high", &models.UserProfile{RelevanceThreshold: 150}, false},
		{"negative threshold", &models.UserProfile{RelevanceThreshold: -1}, false},
		{"bad email", &models.UserProfile{NotificationEmail: "nope"}, false},
		{"negative experience", &models.UserProfile{ExperienceYears: -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateProfile(tt.profile)
			if got != tt.want {
				t.Errorf("ValidateProfile() = %v (%q), want %v", got, msg, tt.want)
			}
			if !got && msg == "" {
				t.Error("expected a message on failure")
			}
		})
	}
}

func TestValidateSearchFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter *models.SearchFilter
		want   bool
	}{
		{"nil filter", nil, false},
		{"valid", &models.SearchFilter{
			Name:              "Energy jobs",
			Sources:           []string{models.SourceLinkedIn, models.SourceIndeed},
			MinRelevanceScore: 50,
			MaxPostingAge:     48,
		}, true},
		{"missing name", &models.SearchFilter{Name: "  "}, false},
		{"unknown source", &models.SearchFilter{Name: "x", Sources: []string{"craigslist"}}, false},
		{"bad threshold", &models.SearchFilter{Name: "x", MinRelevanceScore: 101}, false},
		{"negative age", &models.SearchFilter{Name: "x", MaxPostingAge: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := ValidateSearchFilter(tt.filter)
			if got != tt.want {
				t.Errorf("ValidateSearchFilter() = %v (%q), want %v", got, msg, tt.want)
			}
		})
	}
}

func TestNormalizeKeywords(t *testing.T) {
	got := NormalizeKeywords([]string{" Python ", "SQL", "", "  "})
	want := []string{"python", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeKeywords() = %v, want %v", got, want)
	}
}
