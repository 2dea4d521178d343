package analytics

import (
	"sort"
	"time"

	"memoir/internal/domain/models"
)

// dayOf truncates t to midnight of its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Streak returns the number of consecutive calendar days, ending today or
// yesterday, that contain at least one entry. Days are taken in loc.
func Streak(entries []models.Entry, now time.Time, loc *time.Location) int {
	if len(entries) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(entries))
	for i := range entries {
		days = append(days, dayOf(entries[i].CreatedAt, loc))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := dayOf(now, loc)
	yesterday := today.AddDate(0, 0, -1)
	if !days[0].Equal(today) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	expected := days[0].AddDate(0, 0, -1)
	last := days[0]
	for _, d := range days[1:] {
		if d.Equal(last) {
			continue
		}
		if !d.Equal(expected) {
			break
		}
		streak++
		last = d
		expected = d.AddDate(0, 0, -1)
	}
	return streak
}
