package analytics

import (
	"time"

	"memoir/internal/domain/models"
)

// Bucket is one calendar window of a series. Value is nil when the window
// holds no entry, which is distinct from a zero or neutral value.
type Bucket struct {
	Start time.Time `json:"start"`
	Value *float64  `json:"value"`
	Count int       `json:"count"`
}

// ValueFunc reduces the entries of one bucket to a value. ok=false leaves
// the bucket empty.
type ValueFunc func(bucket []models.Entry) (value float64, ok bool)

// CountValue is the number of entries in the bucket.
func CountValue(bucket []models.Entry) (float64, bool) {
	return float64(len(bucket)), len(bucket) > 0
}

// MoodIntensityValue averages the 1-10 intensity of labelled moods.
// Unknown labels count at the vocabulary default.
func MoodIntensityValue(vocab *Vocabulary) ValueFunc {
	return func(bucket []models.Entry) (float64, bool) {
		var sum float64
		var n int
		for i := range bucket {
			mood := bucket[i].MoodLabel()
			if mood == "" {
				continue
			}
			sum += vocab.Intensity(mood)
			n++
		}
		if n == 0 {
			return 0, false
		}
		return sum / float64(n), true
	}
}

// LensValue averages one lens dimension over the scored entries of a bucket.
func LensValue(lens models.Lens) ValueFunc {
	return func(bucket []models.Entry) (float64, bool) {
		var sum float64
		var n int
		for i := range bucket {
			if bucket[i].LensScores == nil {
				continue
			}
			sum += bucket[i].LensScores.Score(lens)
			n++
		}
		if n == 0 {
			return 0, false
		}
		return sum / float64(n), true
	}
}

// DailySeries returns exactly days buckets, oldest first, the last one being
// today in loc. Entries outside the window are ignored.
func DailySeries(entries []models.Entry, days int, now time.Time, loc *time.Location, fn ValueFunc) []Bucket {
	if days <= 0 {
		return []Bucket{}
	}

	today := dayOf(now, loc)
	start := today.AddDate(0, 0, -(days - 1))

	buckets := make([]Bucket, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		buckets[i].Start = d
		index[d.Format(time.DateOnly)] = i
	}

	grouped := make([][]models.Entry, days)
	for i := range entries {
		key := dayOf(entries[i].CreatedAt, loc).Format(time.DateOnly)
		if j, ok := index[key]; ok {
			grouped[j] = append(grouped[j], entries[i])
		}
	}

	for i := range buckets {
		buckets[i].Count = len(grouped[i])
		if len(grouped[i]) == 0 {
			continue
		}
		if v, ok := fn(grouped[i]); ok {
			value := v
			buckets[i].Value = &value
		}
	}
	return buckets
}

// HeatmapWeek is one row of the activity heatmap.
type HeatmapWeek struct {
	Start time.Time `json:"start"`
	Days  [7]int    `json:"days"`
}

// Heatmap lays out daily entry counts as weeks rows of seven days,
// oldest first, ending today.
func Heatmap(entries []models.Entry, weeks int, now time.Time, loc *time.Location) []HeatmapWeek {
	if weeks <= 0 {
		return []HeatmapWeek{}
	}
	daily := DailySeries(entries, weeks*7, now, loc, CountValue)
	rows := make([]HeatmapWeek, weeks)
	for w := 0; w < weeks; w++ {
		rows[w].Start = daily[w*7].Start
		for d := 0; d < 7; d++ {
			rows[w].Days[d] = daily[w*7+d].Count
		}
	}
	return rows
}

// WeeklySeries sums entry counts into weeks buckets of seven days each,
// oldest first. Weeks without writing carry a nil value.
func WeeklySeries(entries []models.Entry, weeks int, now time.Time, loc *time.Location) []Bucket {
	rows := Heatmap(entries, weeks, now, loc)
	out := make([]Bucket, len(rows))
	for i, row := range rows {
		out[i].Start = row.Start
		for _, c := range row.Days {
			out[i].Count += c
		}
		if out[i].Count > 0 {
			v := float64(out[i].Count)
			out[i].Value = &v
		}
	}
	return out
}
