package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"memoir/internal/analytics"
	"memoir/internal/domain/models"
	"memoir/internal/domain/services"
)

// Classifier is a mock for services.Classifier.
type Classifier struct {
	mock.Mock
}

func (m *Classifier) ClassifyMood(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *Classifier) GenerateInsight(ctx context.Context, text string, recentMoods []string, prefs *models.PromptContext) (string, error) {
	args := m.Called(ctx, text, recentMoods, prefs)
	return args.String(0), args.Error(1)
}

func (m *Classifier) GeneratePrompt(ctx context.Context, prefs *models.PromptContext) (string, error) {
	args := m.Called(ctx, prefs)
	return args.String(0), args.Error(1)
}

func (m *Classifier) AnalyzeLenses(ctx context.Context, text string) (*services.LensAnalysis, error) {
	args := m.Called(ctx, text)
	if a, ok := args.Get(0).(*services.LensAnalysis); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Classifier) GenerateSurprise(ctx context.Context, req *services.SurpriseRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *Classifier) ExtractTraits(ctx context.Context, text string) (*models.TraitExtraction, error) {
	args := m.Called(ctx, text)
	if ext, ok := args.Get(0).(*models.TraitExtraction); ok {
		return ext, args.Error(1)
	}
	return nil, args.Error(1)
}

// UsageService is a mock for services.UsageService.
type UsageService struct {
	mock.Mock
}

func (m *UsageService) GetUsage(ctx context.Context, userID string) (*models.Usage, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*models.Usage); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UsageService) CheckQuota(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UsageService) Consume(ctx context.Context, userID string) (*models.Usage, error) {
	args := m.Called(ctx, userID)
	if u, ok := args.Get(0).(*models.Usage); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// EntrySaveListener is a mock for services.EntrySaveListener.
type EntrySaveListener struct {
	mock.Mock
}

func (m *EntrySaveListener) OnEntrySaved(ctx context.Context, entry *models.Entry) {
	m.Called(ctx, entry)
}

// TraitsService is a mock for services.TraitsService.
type TraitsService struct {
	mock.Mock
}

func (m *TraitsService) GetTraits(ctx context.Context, userID string) (*models.UserTraits, error) {
	args := m.Called(ctx, userID)
	if t, ok := args.Get(0).(*models.UserTraits); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TraitsService) UpdateFromEntry(ctx context.Context, entry *models.Entry) (*models.UserTraits, error) {
	args := m.Called(ctx, entry)
	if t, ok := args.Get(0).(*models.UserTraits); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserPreferencesService is a mock for services.UserPreferencesService.
type UserPreferencesService struct {
	mock.Mock
}

func (m *UserPreferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*models.UserPreferences); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserPreferencesService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	args := m.Called(ctx, userID, req)
	if p, ok := args.Get(0).(*models.UserPreferences); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserPreferencesService) PromptContext(ctx context.Context, userID string) (*models.PromptContext, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*models.PromptContext); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserPreferencesService) Location(ctx context.Context, userID string) *time.Location {
	args := m.Called(ctx, userID)
	if loc, ok := args.Get(0).(*time.Location); ok {
		return loc
	}
	return time.UTC
}

// EntryService is a mock for services.EntryService.
type EntryService struct {
	mock.Mock
}

func (m *EntryService) CreateEntry(ctx context.Context, req *models.CreateEntryRequest) (*models.Entry, error) {
	args := m.Called(ctx, req)
	if e, ok := args.Get(0).(*models.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryService) SeedEntry(ctx context.Context, req *models.SeedEntryRequest) (*models.Entry, error) {
	args := m.Called(ctx, req)
	if e, ok := args.Get(0).(*models.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryService) GetEntry(ctx context.Context, id, userID string) (*models.Entry, error) {
	args := m.Called(ctx, id, userID)
	if e, ok := args.Get(0).(*models.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryService) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	args := m.Called(ctx, userID)
	if e, ok := args.Get(0).([]models.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryService) ClearEntries(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EntryService) GeneratePrompt(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// AnalyticsService is a mock for services.AnalyticsService.
type AnalyticsService struct {
	mock.Mock
}

func (m *AnalyticsService) Dashboard(ctx context.Context, userID string) (*services.Dashboard, error) {
	args := m.Called(ctx, userID)
	if d, ok := args.Get(0).(*services.Dashboard); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsService) Streak(ctx context.Context, userID string) (analytics.ActivitySummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(analytics.ActivitySummary), args.Error(1)
}

func (m *AnalyticsService) Moods(ctx context.Context, userID string) (analytics.Distribution, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(analytics.Distribution), args.Error(1)
}

func (m *AnalyticsService) Series(ctx context.Context, userID string, days int, metric services.SeriesMetric) ([]analytics.Bucket, error) {
	args := m.Called(ctx, userID, days, metric)
	if b, ok := args.Get(0).([]analytics.Bucket); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AnalyticsService) Lenses(ctx context.Context, userID string) (analytics.LensSummary, analytics.TrendReport, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(analytics.LensSummary), args.Get(1).(analytics.TrendReport), args.Error(2)
}

func (m *AnalyticsService) Themes(ctx context.Context, userID string) ([]analytics.ThemeHit, error) {
	args := m.Called(ctx, userID)
	if h, ok := args.Get(0).([]analytics.ThemeHit); ok {
		return h, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReflectionService is a mock for services.ReflectionService.
type ReflectionService struct {
	mock.Mock
}

func (m *ReflectionService) ListReflections(ctx context.Context, userID string, limit int) ([]models.SurpriseReflection, error) {
	args := m.Called(ctx, userID, limit)
	if r, ok := args.Get(0).([]models.SurpriseReflection); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReflectionService) MarkShown(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// GoalService is a mock for services.GoalService.
type GoalService struct {
	mock.Mock
}

func (m *GoalService) ListGoals(ctx context.Context, userID string, status *models.GoalStatus) ([]models.Goal, error) {
	args := m.Called(ctx, userID, status)
	if goals, ok := args.Get(0).([]models.Goal); ok {
		return goals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GoalService) CreateGoal(ctx context.Context, req *models.CreateGoalRequest) (*models.Goal, error) {
	args := m.Called(ctx, req)
	if goal, ok := args.Get(0).(*models.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GoalService) UpdateGoal(ctx context.Context, id, userID string, req *models.UpdateGoalRequest) (*models.Goal, error) {
	args := m.Called(ctx, id, userID, req)
	if goal, ok := args.Get(0).(*models.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GoalService) CompleteGoal(ctx context.Context, id, userID string) (*models.Goal, error) {
	args := m.Called(ctx, id, userID)
	if goal, ok := args.Get(0).(*models.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GoalService) DeleteGoal(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
