package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"jobhunter/internal/config"
	"jobhunter/internal/models"
)

// Templates renders notification emails.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email shell.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #0f766e; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .job-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .score { color: #0f766e; font-weight: 600; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// JobDigest renders the new-jobs notification for a batch of scored jobs.
func (t *Templates) JobDigest(jobs []models.JobWithScore) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] %d New Matching Jobs Found", t.cfg.SiteTitle, len(jobs))

	if len(jobs) == 0 {
		body := "No new matching jobs found in this period."
		return subject, t.baseHTML(subject, "<p>"+body+"</p>"), body
	}

	var jobsHTML strings.Builder
	var jobsText strings.Builder

	jobsText.WriteString(fmt.Sprintf("%d New Job Opportunities Found!\n\n", len(jobs)))
	jobsText.WriteString(strings.Repeat("=", 50) + "\n\n")

	total := 0
	highest := 0
	for i, j := range jobs {
		total += j.Score
		if j.Score > highest {
			highest = j.Score
		}

		posted := "Unknown"
		if j.Job.PostedAt != nil {
			posted = formatTimeAgo(*j.Job.PostedAt)
		}

		jobsHTML.WriteString(fmt.Sprintf(`
            <div class="job-box">
                <p><span class="label">%d. %s</span></p>
                <p><span class="label">Company:</span> %s</p>
                <p><span class="label">Location:</span> %s</p>
                <p><span class="label">Relevance:</span> <span class="score">%d%%</span></p>
                <p><span class="label">Posted:</span> %s</p>
                <p><a href="%s" class="button">Apply</a></p>
            </div>
        `,
			i+1,
			html.EscapeString(j.Job.Title),
			html.EscapeString(orUnspecified(j.Job.Company)),
			html.EscapeString(orUnspecified(j.Job.Location)),
			j.Score,
			posted,
			j.Job.URL,
		))

		jobsText.WriteString(fmt.Sprintf("%d. %s\n", i+1, j.Job.Title))
		jobsText.WriteString(fmt.Sprintf("   Company: %s\n", orUnspecified(j.Job.Company)))
		jobsText.WriteString(fmt.Sprintf("   Location: %s\n", orUnspecified(j.Job.Location)))
		jobsText.WriteString(fmt.Sprintf("   Relevance Score: %d%%\n", j.Score))
		jobsText.WriteString(fmt.Sprintf("   Posted: %s\n", posted))
		if j.Job.URL != "" {
			jobsText.WriteString(fmt.Sprintf("   Apply: %s\n", j.Job.URL))
		}
		jobsText.WriteString("\n" + strings.Repeat("-", 50) + "\n\n")
	}

	average := total / len(jobs)

	content := fmt.Sprintf(`
        <p>%d new jobs match your profile:</p>
        %s
        <div class="job-box">
            <p><span class="label">Total Jobs:</span> %d</p>
            <p><span class="label">Average Relevance:</span> <span class="score">%d%%</span></p>
            <p><span class="label">Highest Match:</span> <span class="score">%d%%</span></p>
        </div>
    `, len(jobs), jobsHTML.String(), len(jobs), average, highest)

	jobsText.WriteString("\nSummary:\n")
	jobsText.WriteString(fmt.Sprintf("Total Jobs: %d\n", len(jobs)))
	jobsText.WriteString(fmt.Sprintf("Average Relevance: %d%%\n", average))
	jobsText.WriteString(fmt.Sprintf("Highest Match: %d%%\n", highest))

	return subject, t.baseHTML(subject, content), jobsText.String()
}

// TestEmail renders the notification used to verify SMTP settings.
func (t *Templates) TestEmail() (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Test Notification", t.cfg.SiteTitle)

	content := `
        <p>This is a test notification. If you are reading this, your email settings work.</p>
    `
	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Test Notification

This is a test notification. If you are reading this, your email settings work.

--
%s
%s`, t.cfg.SiteTitle, t.cfg.BaseURL)

	return
}

func orUnspecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func formatTimeAgo(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}
}
