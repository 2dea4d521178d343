package services

import (
	"context"

	"memoir/internal/analytics"
)

// Dashboard bundles every derived view for one user.
type Dashboard struct {
	Activity             analytics.ActivitySummary   `json:"activity"`
	MoodDistribution     analytics.Distribution      `json:"mood_distribution"`
	CategoryDistribution analytics.Distribution      `json:"category_distribution"`
	LensDistribution     analytics.Distribution      `json:"lens_distribution"`
	MoodSeries           []analytics.Bucket          `json:"mood_series"`
	Pulse                []analytics.Bucket          `json:"pulse"`
	Heatmap              []analytics.HeatmapWeek     `json:"heatmap"`
	Lenses               analytics.LensSummary       `json:"lenses"`
	LensTrend            analytics.TrendReport       `json:"lens_trend"`
	MoodTrend            analytics.TrendReport       `json:"mood_trend"`
	Themes               []analytics.ThemeHit        `json:"themes"`
	ThemeConnections     []analytics.ThemeConnection `json:"theme_connections"`
	Entities             []analytics.Entity          `json:"entities"`
	Rhythm               analytics.Rhythm            `json:"rhythm"`
}

// SeriesMetric selects the value plotted by a daily series.
type SeriesMetric string

const (
	SeriesCount SeriesMetric = "count"
	SeriesMood  SeriesMetric = "mood"
)

// AnalyticsService computes derived views from the user's entry collection
type AnalyticsService interface {
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Streak(ctx context.Context, userID string) (analytics.ActivitySummary, error)
	Moods(ctx context.Context, userID string) (analytics.Distribution, error)
	Series(ctx context.Context, userID string, days int, metric SeriesMetric) ([]analytics.Bucket, error)
	Lenses(ctx context.Context, userID string) (analytics.LensSummary, analytics.TrendReport, error)
	Themes(ctx context.Context, userID string) ([]analytics.ThemeHit, error)
}
