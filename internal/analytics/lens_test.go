package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain/models"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		avg  float64
		want LensLevel
	}{
		{0.95, LevelRising},
		{0.61, LevelRising},
		{0.6, LevelSteady},
		{0.5, LevelSteady},
		{0.4, LevelSoft},
		{0.3, LevelSoft},
		{0.2, LevelQuiet},
		{0, LevelQuiet},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.avg), "avg %v", tt.avg)
	}
}

func TestLensAveragesUsesTrailingWindow(t *testing.T) {
	entries := []models.Entry{
		withScores(daysAgo(0), 0.8),
		daysAgo(1), // unscored, skipped
		withScores(daysAgo(2), 0.6),
		withScores(daysAgo(3), 0.0),
	}

	summary := LensAverages(entries, 2)

	require.False(t, summary.NoData)
	assert.Equal(t, 2, summary.Sample)
	require.Len(t, summary.Readings, len(models.Lenses))
	for i, r := range summary.Readings {
		assert.Equal(t, models.Lenses[i], r.Lens)
		assert.InDelta(t, 0.7, r.Average, 1e-9)
		assert.Equal(t, LevelRising, r.Level)
	}
	assert.Equal(t, models.LensConnection, summary.Dominant)
}

func TestLensAveragesNoData(t *testing.T) {
	summary := LensAverages([]models.Entry{daysAgo(0)}, 7)

	assert.True(t, summary.NoData)
	assert.Empty(t, summary.Readings)
}

func TestLensScoresDominant(t *testing.T) {
	s := models.LensScores{Vitality: 0.4, Growth: 0.4}
	assert.Equal(t, models.LensVitality, s.Dominant())

	s = models.LensScores{}
	assert.Equal(t, models.LensConnection, s.Dominant())
}
