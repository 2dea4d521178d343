package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"memoir/internal/analytics"
	"memoir/internal/config"
	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

// analyticsService implements the AnalyticsService interface. Every view
// is recomputed from the store's snapshot; nothing is persisted.
type analyticsService struct {
	store  repositories.EntryStore
	prefs  services.UserPreferencesService
	vocab  *analytics.Vocabulary
	now    func() time.Time
	logger *slog.Logger
}

// NewAnalyticsService creates an analytics service
func NewAnalyticsService(
	store repositories.EntryStore,
	prefs services.UserPreferencesService,
	vocab *analytics.Vocabulary,
	logger *slog.Logger,
) services.AnalyticsService {
	return &analyticsService{
		store:  store,
		prefs:  prefs,
		vocab:  vocab,
		now:    time.Now,
		logger: logger,
	}
}

// load returns the collection, the user's location and a single reference
// time so every view in one response agrees on "today"
func (s *analyticsService) load(ctx context.Context, userID string) ([]models.Entry, *time.Location, time.Time, error) {
	entries, err := s.store.Entries(ctx, userID)
	if err != nil {
		return nil, nil, time.Time{}, fmt.Errorf("load entries: %w", err)
	}
	loc := s.prefs.Location(ctx, userID)
	return entries, loc, s.now().In(loc), nil
}

// Dashboard computes every view in one pass over the snapshot
func (s *analyticsService) Dashboard(ctx context.Context, userID string) (*services.Dashboard, error) {
	entries, loc, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &services.Dashboard{
		Activity:             analytics.Activity(entries, now, loc),
		MoodDistribution:     analytics.MoodDistribution(entries),
		CategoryDistribution: analytics.CategoryDistribution(entries, s.vocab),
		LensDistribution:     analytics.DominantLensDistribution(entries),
		MoodSeries:           analytics.DailySeries(entries, config.MoodSeriesDays, now, loc, analytics.MoodIntensityValue(s.vocab)),
		Pulse:                analytics.DailySeries(entries, config.PulseDays, now, loc, analytics.CountValue),
		Heatmap:              analytics.Heatmap(entries, config.HeatmapWeeks, now, loc),
		Lenses:               analytics.LensAverages(entries, config.LensWindow),
		LensTrend:            analytics.LensTrend(entries, config.TrendWindow),
		MoodTrend:            analytics.MoodTrend(entries, config.TrendWindow, s.vocab),
		Themes:               analytics.DetectThemes(analytics.JoinContent(entries), s.vocab, analytics.DefaultThemeMinCount, analytics.DefaultThemeTopN),
		ThemeConnections:     analytics.ThemeConnections(entries, s.vocab, config.ThemeConnectionCap),
		Entities:             analytics.ExtractEntities(entries, config.EntityLimit),
		Rhythm:               analytics.WritingRhythm(entries, loc),
	}

	s.logger.Debug("dashboard computed", "user_id", userID, "entries", len(entries))
	return dashboard, nil
}

func (s *analyticsService) Streak(ctx context.Context, userID string) (analytics.ActivitySummary, error) {
	entries, loc, now, err := s.load(ctx, userID)
	if err != nil {
		return analytics.ActivitySummary{}, err
	}
	return analytics.Activity(entries, now, loc), nil
}

func (s *analyticsService) Moods(ctx context.Context, userID string) (analytics.Distribution, error) {
	entries, _, _, err := s.load(ctx, userID)
	if err != nil {
		return analytics.Distribution{}, err
	}
	return analytics.MoodDistribution(entries), nil
}

// Series returns a gap-filled daily series of counts or mood intensity
func (s *analyticsService) Series(ctx context.Context, userID string, days int, metric services.SeriesMetric) ([]analytics.Bucket, error) {
	if days < 1 || days > config.MaxSeriesDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, config.MaxSeriesDays)
	}

	var fn analytics.ValueFunc
	switch metric {
	case services.SeriesCount, "":
		fn = analytics.CountValue
	case services.SeriesMood:
		fn = analytics.MoodIntensityValue(s.vocab)
	default:
		return nil, fmt.Errorf("%w: metric must be count or mood", domain.ErrValidation)
	}

	entries, loc, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.DailySeries(entries, days, now, loc, fn), nil
}

func (s *analyticsService) Lenses(ctx context.Context, userID string) (analytics.LensSummary, analytics.TrendReport, error) {
	entries, _, _, err := s.load(ctx, userID)
	if err != nil {
		return analytics.LensSummary{}, analytics.TrendReport{}, err
	}
	return analytics.LensAverages(entries, config.LensWindow), analytics.LensTrend(entries, config.TrendWindow), nil
}

func (s *analyticsService) Themes(ctx context.Context, userID string) ([]analytics.ThemeHit, error) {
	entries, _, _, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.DetectThemes(analytics.JoinContent(entries), s.vocab, analytics.DefaultThemeMinCount, analytics.DefaultThemeTopN), nil
}
