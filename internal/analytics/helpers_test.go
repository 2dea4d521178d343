package analytics

import (
	"time"

	"memoir/internal/domain/models"
)

var testNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// daysAgo returns an entry written n days before testNow at the same hour.
func daysAgo(n int) models.Entry {
	return models.Entry{
		ID:        "e",
		UserID:    "u",
		Content:   "note",
		CreatedAt: testNow.AddDate(0, 0, -n),
	}
}

func withMood(e models.Entry, mood string) models.Entry {
	e.Mood = strPtr(mood)
	return e
}

func withScores(e models.Entry, v float64) models.Entry {
	e.LensScores = &models.LensScores{Connection: v, Vitality: v, Purpose: v, Growth: v, Harmony: v}
	return e
}

// moodEntries builds newest-first entries, one per day, from the given moods.
func moodEntries(moods ...string) []models.Entry {
	out := make([]models.Entry, len(moods))
	for i, m := range moods {
		out[i] = withMood(daysAgo(i), m)
	}
	return out
}
