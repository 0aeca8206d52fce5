package models

import "time"

// JobDetail is a job joined with the requesting user's score and
// application state.
type JobDetail struct {
	Job             Job      `json:"job"`
	RelevanceScore  int      `json:"relevance_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	HasApplied      bool     `json:"has_applied"`
}

// AutoApplyResult summarizes one auto-apply run.
type AutoApplyResult struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// AutoApplyCandidate is a job that the auto-apply engine would consider,
// exposed for preview in the UI.
type AutoApplyCandidate struct {
	Job                 Job      `json:"job"`
	Score               int      `json:"score"`
	MatchedKeywords     []string `json:"matched_keywords"`
	AutoApplyConfidence int      `json:"auto_apply_confidence"`
	WouldAutoApply      bool     `json:"would_auto_apply"`
}

// RefreshResult summarizes one job refresh pass.
type RefreshResult struct {
	JobsFound int `json:"jobs_found"`
	NewJobs   int `json:"new_jobs"`
}

// RefreshStatus reports the last and next scheduled refresh.
type RefreshStatus struct {
	LastRefresh *time.Time `json:"last_refresh"`
	NextRefresh *time.Time `json:"next_refresh"`
	Status      string     `json:"status"` // never, scheduled, overdue
	JobsFound   int        `json:"jobs_found"`
	NewJobs     int        `json:"new_jobs"`
}

// AnalyticsOverview aggregates application activity for the dashboard.
type AnalyticsOverview struct {
	TotalApplications     int                  `json:"total_applications"`
	ManualApplications    int                  `json:"manual_applications"`
	AutomaticApplications int                  `json:"automatic_applications"`
	PendingApplications   int                  `json:"pending_applications"`
	InterviewsScheduled   int                  `json:"interviews_scheduled"`
	AcceptedOffers        int                  `json:"accepted_offers"`
	RejectedApplications  int                  `json:"rejected_applications"`
	SuccessRate           int                  `json:"success_rate"`
	LastRefresh           *time.Time           `json:"last_refresh"`
	NextRefresh           *time.Time           `json:"next_refresh"`
	RecentApplications    []ApplicationWithJob `json:"recent_applications"`
}

// TrendPoint is one day of application activity.
type TrendPoint struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Manual    int    `json:"manual"`
	Automatic int    `json:"automatic"`
	Total     int    `json:"total"`
}
