package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain/models"
)

func TestActivity(t *testing.T) {
	e0 := daysAgo(0)
	e0.Content = "one two three"
	e1 := daysAgo(1)
	e1.AIInsight = strPtr("you keep coming back to mornings")
	entries := []models.Entry{e0, e1, daysAgo(2), daysAgo(10)}

	got := Activity(entries, testNow, time.UTC)

	assert.Equal(t, 3, got.Streak)
	assert.Equal(t, 3, got.ThisWeek)
	assert.Equal(t, 4, got.Total)
	assert.InDelta(t, 1.5, got.AvgWords, 1e-9)
	require.NotNil(t, got.LatestInsight)
	assert.Equal(t, "you keep coming back to mornings", *got.LatestInsight)
	require.NotNil(t, got.LatestEntryDate)
	assert.Equal(t, "2024-03-15", *got.LatestEntryDate)
}

func TestActivityEmpty(t *testing.T) {
	got := Activity(nil, testNow, time.UTC)

	assert.Zero(t, got.Total)
	assert.Zero(t, got.AvgWords)
	assert.Nil(t, got.LatestEntryDate)
}

func TestWritingRhythm(t *testing.T) {
	entries := []models.Entry{
		withMood(daysAgo(0), "calm"), // Friday
		withMood(daysAgo(1), "calm"), // Thursday
		withMood(daysAgo(7), "sad"),  // Friday
		withMood(daysAgo(9), "calm"),
		withMood(daysAgo(10), "happy"),
		withMood(daysAgo(14), "sad"), // Friday
	}

	got := WritingRhythm(entries, time.UTC)

	assert.Equal(t, "Friday", got.MostActiveWeekday)
	assert.Equal(t, 3, got.WeekdayCounts[time.Friday])
	assert.Equal(t, "calm", got.ConsistentMood)
}

func TestWritingRhythmNoConsistentMood(t *testing.T) {
	got := WritingRhythm(moodEntries("calm", "sad", "happy", "calm", "sad"), time.UTC)
	assert.Empty(t, got.ConsistentMood)
}

func TestAggregatesAreIdempotent(t *testing.T) {
	vocab := DefaultVocabulary()
	entries := []models.Entry{
		withScores(withMood(daysAgo(0), "happy"), 0.7),
		withScores(withMood(daysAgo(1), "anxious"), 0.3),
		withScores(withMood(daysAgo(3), "calm"), 0.5),
		withMood(daysAgo(4), "happy"),
	}
	entries[0].Content = "work on the project with Maya, then music"

	run := func() []byte {
		out, err := json.Marshal(map[string]interface{}{
			"activity": Activity(entries, testNow, time.UTC),
			"moods":    MoodDistribution(entries),
			"lenses":   LensAverages(entries, 7),
			"trend":    LensTrend(entries, 1),
			"series":   DailySeries(entries, 14, testNow, time.UTC, MoodIntensityValue(vocab)),
			"themes":   DetectThemes(JoinContent(entries), vocab, 1, 3),
			"entities": ExtractEntities(entries, 15),
			"rhythm":   WritingRhythm(entries, time.UTC),
		})
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, run(), run())
}
