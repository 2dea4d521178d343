package analytics

import (
	"strings"
	"time"

	"memoir/internal/domain/models"
)

// ActivitySummary is the headline numbers of the dashboard.
type ActivitySummary struct {
	Streak          int     `json:"streak"`
	ThisWeek        int     `json:"this_week"`
	Total           int     `json:"total"`
	AvgWords        float64 `json:"avg_words"`
	LatestInsight   *string `json:"latest_insight,omitempty"`
	LatestEntryDate *string `json:"latest_entry_date,omitempty"`
}

// Activity computes the summary. ThisWeek counts entries in the trailing
// seven days from now. Entries must be newest first.
func Activity(entries []models.Entry, now time.Time, loc *time.Location) ActivitySummary {
	summary := ActivitySummary{
		Streak: Streak(entries, now, loc),
		Total:  len(entries),
	}

	cutoff := now.Add(-7 * 24 * time.Hour)
	words := 0
	for i := range entries {
		if entries[i].CreatedAt.After(cutoff) {
			summary.ThisWeek++
		}
		words += len(strings.Fields(entries[i].Content))
		if summary.LatestInsight == nil && entries[i].AIInsight != nil && *entries[i].AIInsight != "" {
			summary.LatestInsight = entries[i].AIInsight
		}
	}
	if len(entries) > 0 {
		summary.AvgWords = float64(words) / float64(len(entries))
		latest := dayOf(entries[0].CreatedAt, loc).Format(time.DateOnly)
		summary.LatestEntryDate = &latest
	}
	return summary
}

// Rhythm describes when and how a user tends to write.
type Rhythm struct {
	MostActiveWeekday string `json:"most_active_weekday,omitempty"`
	WeekdayCounts     [7]int `json:"weekday_counts"`
	ConsistentMood    string `json:"consistent_mood,omitempty"`
}

// consistentMoodWindow and consistentMoodMin: a mood that shows up at least
// min times among the newest window labelled entries is "consistent".
const (
	consistentMoodWindow = 5
	consistentMoodMin    = 3
)

// WritingRhythm finds the busiest weekday (earliest weekday on ties, Sunday
// first) and a recently consistent mood, if any.
func WritingRhythm(entries []models.Entry, loc *time.Location) Rhythm {
	var r Rhythm
	if len(entries) == 0 {
		return r
	}
	if loc == nil {
		loc = time.UTC
	}

	for i := range entries {
		r.WeekdayCounts[entries[i].CreatedAt.In(loc).Weekday()]++
	}
	best := 0
	for d := 1; d < 7; d++ {
		if r.WeekdayCounts[d] > r.WeekdayCounts[best] {
			best = d
		}
	}
	r.MostActiveWeekday = time.Weekday(best).String()

	recent := make([]models.Entry, 0, consistentMoodWindow)
	for i := range entries {
		if entries[i].MoodLabel() != "" {
			recent = append(recent, entries[i])
			if len(recent) == consistentMoodWindow {
				break
			}
		}
	}
	if dist := MoodDistribution(recent); !dist.NoData {
		if s, _ := dist.Share(dist.Dominant); s.Count >= consistentMoodMin {
			r.ConsistentMood = dist.Dominant
		}
	}
	return r
}
