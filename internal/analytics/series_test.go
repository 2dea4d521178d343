package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain/models"
)

func TestDailySeriesFillsGaps(t *testing.T) {
	entries := []models.Entry{
		daysAgo(8),  // bucket 5
		daysAgo(13), // bucket 0
		daysAgo(13),
		daysAgo(20), // outside the window
	}

	buckets := DailySeries(entries, 14, testNow, time.UTC, CountValue)

	require.Len(t, buckets, 14)
	for i, b := range buckets {
		switch i {
		case 0:
			require.NotNil(t, b.Value)
			assert.Equal(t, 2.0, *b.Value)
			assert.Equal(t, 2, b.Count)
		case 5:
			require.NotNil(t, b.Value)
			assert.Equal(t, 1.0, *b.Value)
		default:
			assert.Nil(t, b.Value, "bucket %d should be empty", i)
			assert.Zero(t, b.Count)
		}
	}

	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), buckets[13].Start)
}

func TestDailySeriesEmptyCollection(t *testing.T) {
	buckets := DailySeries(nil, 7, testNow, time.UTC, CountValue)

	require.Len(t, buckets, 7)
	for _, b := range buckets {
		assert.Nil(t, b.Value)
	}
	assert.Empty(t, DailySeries(nil, 0, testNow, time.UTC, CountValue))
}

func TestDailySeriesMoodIntensity(t *testing.T) {
	vocab := DefaultVocabulary()
	entries := []models.Entry{
		withMood(daysAgo(0), "happy"),   // 8
		withMood(daysAgo(0), "sad"),     // 2
		withMood(daysAgo(1), "wistful"), // unknown, default 5
		daysAgo(2),                      // written but unlabelled
	}

	buckets := DailySeries(entries, 3, testNow, time.UTC, MoodIntensityValue(vocab))

	require.Len(t, buckets, 3)
	assert.Nil(t, buckets[0].Value)
	assert.Equal(t, 1, buckets[0].Count)
	require.NotNil(t, buckets[1].Value)
	assert.Equal(t, 5.0, *buckets[1].Value)
	require.NotNil(t, buckets[2].Value)
	assert.Equal(t, 5.0, *buckets[2].Value)
}

func TestDailySeriesLensValue(t *testing.T) {
	entries := []models.Entry{withScores(daysAgo(0), 0.4), withScores(daysAgo(0), 0.8)}

	buckets := DailySeries(entries, 1, testNow, time.UTC, LensValue(models.LensGrowth))

	require.NotNil(t, buckets[0].Value)
	assert.InDelta(t, 0.6, *buckets[0].Value, 1e-9)
}

func TestHeatmapAndWeeklySeries(t *testing.T) {
	entries := []models.Entry{daysAgo(0), daysAgo(0), daysAgo(6), daysAgo(7), daysAgo(15)}

	rows := Heatmap(entries, 2, testNow, time.UTC)
	require.Len(t, rows, 2)
	assert.Equal(t, [7]int{0, 0, 0, 0, 0, 0, 1}, rows[0].Days)
	assert.Equal(t, [7]int{1, 0, 0, 0, 0, 0, 2}, rows[1].Days)

	weeks := WeeklySeries(entries, 4, testNow, time.UTC)
	require.Len(t, weeks, 4)
	assert.Nil(t, weeks[0].Value)
	require.NotNil(t, weeks[1].Value)
	assert.Equal(t, 1.0, *weeks[1].Value)
	assert.Equal(t, 1, weeks[2].Count)
	assert.Equal(t, 3, weeks[3].Count)
}
