package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memoir/internal/analytics"
	"memoir/internal/config"
	"memoir/internal/domain"
	"memoir/internal/domain/models"
	repomocks "memoir/internal/domain/repositories/mocks"
	"memoir/internal/domain/services"
	svcmocks "memoir/internal/domain/services/mocks"
)

func sampleEntries() []models.Entry {
	day := 24 * time.Hour
	return []models.Entry{
		{ID: "3", Content: "Work project meeting with my boss", Mood: strPtr("happy"), CreatedAt: testNow.Add(-time.Hour),
			LensScores: &models.LensScores{Purpose: 0.9, Connection: 0.2}},
		{ID: "2", Content: "Work deadline, work stress", Mood: strPtr("anxious"), CreatedAt: testNow.Add(-day),
			LensScores: &models.LensScores{Purpose: 0.7, Vitality: 0.3}},
		{ID: "1", Content: "Quiet walk", Mood: strPtr("happy"), CreatedAt: testNow.Add(-2 * day)},
	}
}

func newAnalyticsService(entries []models.Entry, err error) *analyticsService {
	store := new(repomocks.EntryStore)
	store.On("Entries", mock.Anything, "u1").Return(entries, err)
	prefs := new(svcmocks.UserPreferencesService)
	prefs.On("Location", mock.Anything, "u1").Return(time.UTC)

	svc := NewAnalyticsService(store, prefs, analytics.DefaultVocabulary(), testLogger()).(*analyticsService)
	svc.now = fixedNow
	return svc
}

func TestDashboard(t *testing.T) {
	svc := newAnalyticsService(sampleEntries(), nil)

	d, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, d.Activity.Streak)
	assert.Equal(t, 3, d.Activity.Total)
	assert.Equal(t, "happy", d.MoodDistribution.Dominant)
	assert.Len(t, d.MoodSeries, config.MoodSeriesDays)
	assert.Len(t, d.Pulse, config.PulseDays)
	assert.Len(t, d.Heatmap, config.HeatmapWeeks)
	assert.Equal(t, models.LensPurpose, d.Lenses.Dominant)
	assert.Equal(t, 2, d.Lenses.Sample)
	assert.True(t, d.LensTrend.Insufficient)
	require.NotEmpty(t, d.Themes)
	assert.Equal(t, "work", d.Themes[0].Name)
}

func TestDashboard_Idempotent(t *testing.T) {
	svc := newAnalyticsService(sampleEntries(), nil)

	first, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	second, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDashboard_Empty(t *testing.T) {
	svc := newAnalyticsService([]models.Entry{}, nil)

	d, err := svc.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, d.Activity.Streak)
	assert.True(t, d.MoodDistribution.NoData)
	assert.True(t, d.Lenses.NoData)
	assert.Empty(t, d.Themes)
	for _, b := range d.MoodSeries {
		assert.Nil(t, b.Value)
	}
}

func TestDashboard_StoreError(t *testing.T) {
	svc := newAnalyticsService(nil, errors.New("db down"))

	_, err := svc.Dashboard(context.Background(), "u1")
	assert.Error(t, err)
}

func TestSeries(t *testing.T) {
	svc := newAnalyticsService(sampleEntries(), nil)

	buckets, err := svc.Series(context.Background(), "u1", 3, services.SeriesCount)
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	for _, b := range buckets {
		require.NotNil(t, b.Value)
		assert.Equal(t, 1.0, *b.Value)
	}

	moods, err := svc.Series(context.Background(), "u1", 3, services.SeriesMood)
	require.NoError(t, err)
	require.NotNil(t, moods[2].Value)
	assert.Equal(t, 8.0, *moods[2].Value)
}

func TestSeries_Validation(t *testing.T) {
	svc := newAnalyticsService(sampleEntries(), nil)

	_, err := svc.Series(context.Background(), "u1", 0, services.SeriesCount)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Series(context.Background(), "u1", config.MaxSeriesDays+1, services.SeriesCount)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Series(context.Background(), "u1", 7, services.SeriesMetric("words"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLensesAndThemes(t *testing.T) {
	svc := newAnalyticsService(sampleEntries(), nil)

	summary, trend, err := svc.Lenses(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LensPurpose, summary.Dominant)
	assert.True(t, trend.Insufficient)

	themes, err := svc.Themes(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Equal(t, "work", themes[0].Name)
}
