package autoapply

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"jobhunter/internal/db"
	"jobhunter/internal/models"
)

// fakeStore is an in-memory Store for engine tests. It records which
// queries ran so tests can assert on short-circuit behaviour.
type fakeStore struct {
	profile  *models.UserProfile
	jobs     map[uuid.UUID]*models.Job
	scored   []models.JobWithScore
	patterns []models.ApplicationPattern
	applied  map[uuid.UUID]bool

	createdApplications []models.Application
	savedPatterns       []models.ApplicationPattern
	updatedPatterns     []models.ApplicationPattern
	jobsQueried         bool
	patternsQueried     bool

	savePatternErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:    make(map[uuid.UUID]*models.Job),
		applied: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) GetUserProfile(_ context.Context, _ uuid.UUID) (*models.UserProfile, error) {
	if f.profile == nil {
		return nil, db.ErrProfileNotFound
	}
	return f.profile, nil
}

func (f *fakeStore) GetJobByID(_ context.Context, id uuid.UUID) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, db.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeStore) GetJobsWithScores(_ context.Context, _ uuid.UUID, opts db.JobsWithScoresOptions) ([]models.JobWithScore, error) {
	f.jobsQueried = true
	out := []models.JobWithScore{}
	for _, s := range f.scored {
		if s.Score >= opts.MinScore {
			out = append(out, s)
		}
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) GetApplicationPatterns(_ context.Context, _ uuid.UUID) ([]models.ApplicationPattern, error) {
	f.patternsQueried = true
	return f.patterns, nil
}

func (f *fakeStore) SaveApplicationPattern(_ context.Context, p *models.ApplicationPattern) error {
	if f.savePatternErr != nil {
		return f.savePatternErr
	}
	p.ID = uuid.New()
	f.savedPatterns = append(f.savedPatterns, *p)
	return nil
}

func (f *fakeStore) UpdateApplicationPattern(_ context.Context, p *models.ApplicationPattern) error {
	f.updatedPatterns = append(f.updatedPatterns, *p)
	return nil
}

func (f *fakeStore) HasAppliedToJob(_ context.Context, _, jobID uuid.UUID) (bool, error) {
	return f.applied[jobID], nil
}

func (f *fakeStore) CreateApplication(_ context.Context, app *models.Application) error {
	if f.applied[app.JobID] {
		return db.ErrDuplicateApplication
	}
	app.ID = uuid.New()
	f.applied[app.JobID] = true
	f.createdApplications = append(f.createdApplications, *app)
	return nil
}

func scoredJob(title, company, location string, score int, keywords ...string) models.JobWithScore {
	return models.JobWithScore{
		Job: models.Job{
			ID:       uuid.New(),
			Title:    title,
			Company:  company,
			Location: location,
			Keywords: keywords,
		},
		Score: score,
	}
}

func TestProcessAutoApplyDisabledProfile(t *testing.T) {
	store := newFakeStore()
	store.profile = &models.UserProfile{AutoApplyEnabled: false}

	result, err := NewEngine(store).ProcessAutoApply(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ProcessAutoApply: %v", err)
	}

	if result.Applied != 0 || result.Skipped != 0 {
		t.Errorf("expected empty result for a disabled profile, got %+v", result)
	}
	if store.jobsQueried || store.patternsQueried {
		t.Error("expected no job or pattern queries for a disabled profile")
	}
}

func TestProcessAutoApplyMissingProfile(t *testing.T) {
	store := newFakeStore()

	result, err := NewEngine(store).ProcessAutoApply(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ProcessAutoApply: %v", err)
	}
	if result.Applied != 0 || result.Skipped != 0 {
		t.Errorf("expected empty result without a profile, got %+v", result)
	}
}

func TestProcessAutoApplyNoPatterns(t *testing.T) {
	store := newFakeStore()
	store.profile = &models.UserProfile{AutoApplyEnabled: true}
	store.scored = []models.JobWithScore{
		scoredJob("Data Scientist", "Acme", "Berlin", 90, "python"),
	}

	result, err := NewEngine(store).ProcessAutoApply(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ProcessAutoApply: %v", err)
	}
	if result.Applied != 0 || result.Skipped != 0 {
		t.Errorf("expected empty result without patterns, got %+v", result)
	}
	if store.jobsQueried {
		t.Error("expected no candidate query without patterns")
	}
}

func TestProcessAutoApplySubmitsConfidentMatches(t *testing.T) {
	store := newFakeStore()
	store.profile = &models.UserProfile{AutoApplyEnabled: true, RelevanceThreshold: 50}
	store.patterns = []models.ApplicationPattern{{
		Keywords:  []string{"python", "machine learning"},
		Companies: []string{"siemens energy"},
		IsActive:  true,
	}}

	confident := scoredJob("ML Engineer", "Siemens Energy", "Berlin", 85, "python", "machine learning")
	weak := scoredJob("Office Manager", "Acme", "Munich", 55, "filing")
	store.scored = []models.JobWithScore{confident, weak}

	result, err := NewEngine(store).ProcessAutoApply(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ProcessAutoApply: %v", err)
	}

	if result.Applied != 1 {
		t.Fatalf("expected 1 application, got %d", result.Applied)
	}
	if result.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", result.Skipped)
	}

	app := store.createdApplications[0]
	if app.JobID != confident.Job.ID {
		t.Error("applied to the wrong job")
	}
	if app.Type != models.ApplicationAutomatic || app.Status != models.StatusSubmitted {
		t.Errorf("expected an automatic submitted application, got type %q status %q", app.Type, app.Status)
	}
	if !strings.Contains(app.Notes, "Relevance score: 85") {
		t.Errorf("expected notes to record the relevance score, got %q", app.Notes)
	}
}

func TestProcessAutoApplySkipsAlreadyApplied(t *testing.T) {
	store := newFakeStore()
	store.profile = &models.UserProfile{AutoApplyEnabled: true}
	store.patterns = []models.ApplicationPattern{{
		Keywords: []string{"python", "sql"},
		IsActive: true,
	}}

	job := scoredJob("Data Engineer", "Acme", "Berlin", 80, "python", "sql")
	store.scored = []models.JobWithScore{job}
	store.applied[job.Job.ID] = true

	result, err := NewEngine(store).ProcessAutoApply(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ProcessAutoApply: %v", err)
	}
	if result.Applied != 0 || result.Skipped != 1 {
		t.Errorf("expected the applied job to be skipped, got %+v", result)
	}
}

func TestProcessAutoApplyCapsPerRun(t *testing.T) {
	store := newFakeStore()
	store.profile = &models.UserProfile{AutoApplyEnabled: true}
	store.patterns = []models.ApplicationPattern{{
		Keywords:  []string{"python", "machine learning"},
		Companies: []string{"acme"},
		IsActive:  true,
	}}

	for i := 0; i < 8; i++ {
		store.scored = append(store.scored,
			scoredJob("ML Engineer", "Acme", "Berlin", 90, "python", "machine learning"))
	}

	result, err := NewEngine(store).ProcessAutoApply(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ProcessAutoApply: %v", err)
	}

	if result.Applied != maxPerRun {
		t.Errorf("expected %d applications, got %d", maxPerRun, result.Applied)
	}
	if result.Skipped != 0 {
		t.Errorf("expected jobs beyond the cap left uncounted, got %d skipped", result.Skipped)
	}
}

func TestGetCandidatesMarksAutoApply(t *testing.T) {
	store := newFakeStore()
	store.profile = &models.UserProfile{RelevanceThreshold: 50}
	store.patterns = []models.ApplicationPattern{{
		Keywords:  []string{"python", "machine learning"},
		Companies: []string{"siemens energy"},
		IsActive:  true,
	}}

	// Keyword overlap plus company and location: submission territory.
	strong := scoredJob("ML Engineer", "Siemens Energy", "Berlin", 85, "python", "machine learning")
	// Keyword overlap plus location only: confidence 60, preview only.
	borderline := scoredJob("Developer", "Acme", "Berlin", 70, "python", "machine learning")
	store.patterns[0].Locations = []string{"berlin"}
	store.scored = []models.JobWithScore{strong, borderline}

	candidates, err := NewEngine(store).GetCandidates(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetCandidates: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if !candidates[0].WouldAutoApply {
		t.Error("expected the strong candidate to be marked for auto-apply")
	}
	if candidates[1].WouldAutoApply {
		t.Error("expected the borderline candidate below the submission threshold")
	}
}

func TestGetCandidatesNoPatterns(t *testing.T) {
	store := newFakeStore()
	store.profile = &models.UserProfile{RelevanceThreshold: 50}
	store.scored = []models.JobWithScore{
		scoredJob("Data Scientist", "Acme", "Berlin", 90, "python"),
	}

	candidates, err := NewEngine(store).GetCandidates(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetCandidates: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates without patterns, got %d", len(candidates))
	}
	if store.jobsQueried {
		t.Error("expected no job query without patterns")
	}
}

func TestGetCandidatesMissingProfile(t *testing.T) {
	store := newFakeStore()

	candidates, err := NewEngine(store).GetCandidates(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetCandidates: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates without a profile, got %d", len(candidates))
	}
}

func TestLearnCreatesPattern(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	store.jobs[jobID] = &models.Job{
		ID:       jobID,
		Company:  "Siemens Energy",
		Location: "Berlin",
		Keywords: []string{"python", "forecasting"},
	}

	userID := uuid.New()
	if err := NewEngine(store).Learn(context.Background(), userID, jobID); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if len(store.savedPatterns) != 1 {
		t.Fatalf("expected 1 new pattern, got %d", len(store.savedPatterns))
	}
	p := store.savedPatterns[0]
	if p.PatternType != models.PatternLearned {
		t.Errorf("expected pattern type %q, got %q", models.PatternLearned, p.PatternType)
	}
	if p.ApplicationCount != 1 || !p.IsActive {
		t.Errorf("expected an active pattern with count 1, got %+v", p)
	}
	if p.MinRelevanceScore != models.DefaultPatternMinScore {
		t.Errorf("expected min relevance score %d, got %d", models.DefaultPatternMinScore, p.MinRelevanceScore)
	}
}

func TestLearnGrowsExistingPattern(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	store.jobs[jobID] = &models.Job{
		ID:       jobID,
		Company:  "Vattenfall",
		Location: "Hamburg",
		Keywords: []string{"python", "forecasting", "grid"},
	}
	store.patterns = []models.ApplicationPattern{{
		ID:               uuid.New(),
		Keywords:         []string{"python", "forecasting"},
		Companies:        []string{"Siemens Energy"},
		Locations:        []string{"Berlin"},
		ApplicationCount: 2,
		SuccessRate:      40,
		IsActive:         true,
	}}

	if err := NewEngine(store).Learn(context.Background(), uuid.New(), jobID); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if len(store.savedPatterns) != 0 {
		t.Fatal("expected no new pattern when one already fits")
	}
	if len(store.updatedPatterns) != 1 {
		t.Fatalf("expected 1 pattern update, got %d", len(store.updatedPatterns))
	}

	p := store.updatedPatterns[0]
	if len(p.Keywords) != 3 {
		t.Errorf("expected keywords to grow to 3, got %v", p.Keywords)
	}
	if len(p.Companies) != 2 || len(p.Locations) != 2 {
		t.Errorf("expected company and location added, got %v / %v", p.Companies, p.Locations)
	}
	if p.ApplicationCount != 3 {
		t.Errorf("expected application count 3, got %d", p.ApplicationCount)
	}
	if p.SuccessRate != 40 {
		t.Errorf("expected success rate untouched, got %v", p.SuccessRate)
	}
}

func TestLearnSkipsEmptyCompanyAndLocation(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	store.jobs[jobID] = &models.Job{
		ID:       jobID,
		Keywords: []string{"python", "forecasting"},
	}

	if err := NewEngine(store).Learn(context.Background(), uuid.New(), jobID); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if len(store.savedPatterns) != 1 {
		t.Fatalf("expected 1 new pattern, got %d", len(store.savedPatterns))
	}
	p := store.savedPatterns[0]
	// An empty string in these sets would match every job's company or
	// location during scoring.
	if len(p.Companies) != 0 || len(p.Locations) != 0 {
		t.Errorf("expected empty company and location left out, got %v / %v", p.Companies, p.Locations)
	}
}

func TestLearnPropagatesStoreErrors(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	store.jobs[jobID] = &models.Job{
		ID:       jobID,
		Company:  "Acme",
		Keywords: []string{"python", "forecasting"},
	}
	store.savePatternErr = errors.New("connection reset")

	err := NewEngine(store).Learn(context.Background(), uuid.New(), jobID)
	if err == nil {
		t.Fatal("expected the store failure to propagate")
	}
	if !errors.Is(err, store.savePatternErr) {
		t.Errorf("expected the cause wrapped, got %v", err)
	}
}

func TestLearnMissingJob(t *testing.T) {
	store := newFakeStore()

	if err := NewEngine(store).Learn(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("Learn: %v", err)
	}
	if store.patternsQueried {
		t.Error("expected no pattern query for a missing job")
	}
	if len(store.savedPatterns) != 0 {
		t.Error("expected no pattern created for a missing job")
	}
}

func TestLearnSingleSharedKeywordCreatesNewPattern(t *testing.T) {
	store := newFakeStore()
	jobID := uuid.New()
	store.jobs[jobID] = &models.Job{
		ID:       jobID,
		Company:  "Acme",
		Location: "Munich",
		Keywords: []string{"python", "marketing"},
	}
	store.patterns = []models.ApplicationPattern{{
		ID:       uuid.New(),
		Keywords: []string{"python", "forecasting"},
		IsActive: true,
	}}

	if err := NewEngine(store).Learn(context.Background(), uuid.New(), jobID); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if len(store.updatedPatterns) != 0 {
		t.Error("expected one shared keyword not to grow the pattern")
	}
	if len(store.savedPatterns) != 1 {
		t.Errorf("expected a new pattern, got %d", len(store.savedPatterns))
	}
}
