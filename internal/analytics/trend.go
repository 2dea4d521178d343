package analytics

import (
	"memoir/internal/domain/models"
)

// Direction labels the sign of a trend delta.
type Direction string

const (
	DirectionRising Direction = "rising"
	DirectionFading Direction = "fading"
	DirectionSteady Direction = "steady"
)

// TrendDeadZone is the band around zero treated as no change.
const TrendDeadZone = 0.05

// MoodMetric names the mood-intensity reading in a TrendReport.
const MoodMetric = "mood"

// DirectionOf maps a delta to a direction.
func DirectionOf(delta float64) Direction {
	switch {
	case delta > TrendDeadZone:
		return DirectionRising
	case delta < -TrendDeadZone:
		return DirectionFading
	default:
		return DirectionSteady
	}
}

// TrendReading compares one metric across the two windows.
type TrendReading struct {
	Metric    string    `json:"metric"`
	Recent    float64   `json:"recent"`
	Previous  float64   `json:"previous"`
	Delta     float64   `json:"delta"`
	Direction Direction `json:"direction"`
}

// TrendReport holds the per-metric comparisons of the newest K entries
// against the K before them.
type TrendReport struct {
	Window       int            `json:"window"`
	Readings     []TrendReading `json:"readings"`
	Insufficient bool           `json:"insufficient"`
}

func reading(metric string, recent, previous float64) TrendReading {
	delta := recent - previous
	return TrendReading{
		Metric:    metric,
		Recent:    recent,
		Previous:  previous,
		Delta:     delta,
		Direction: DirectionOf(delta),
	}
}

// LensTrend splits the newest 2k scored entries into halves and compares
// their averages per dimension. Entries must be newest first.
func LensTrend(entries []models.Entry, k int) TrendReport {
	sample := scored(entries)
	if k <= 0 || len(sample) < 2*k {
		return TrendReport{Window: k, Readings: []TrendReading{}, Insufficient: true}
	}

	recent := averageScores(sample[:k])
	previous := averageScores(sample[k : 2*k])

	readings := make([]TrendReading, 0, len(models.Lenses))
	for _, l := range models.Lenses {
		readings = append(readings, reading(string(l), recent.Score(l), previous.Score(l)))
	}
	return TrendReport{Window: k, Readings: readings}
}

// MoodTrend does the same over labelled moods. Intensities are scaled to
// [0,1] so the dead zone means the same thing as for lenses.
func MoodTrend(entries []models.Entry, k int, vocab *Vocabulary) TrendReport {
	sample := make([]float64, 0, len(entries))
	for i := range entries {
		if mood := entries[i].MoodLabel(); mood != "" {
			sample = append(sample, vocab.Intensity(mood)/10)
		}
	}
	if k <= 0 || len(sample) < 2*k {
		return TrendReport{Window: k, Readings: []TrendReading{}, Insufficient: true}
	}

	return TrendReport{
		Window:   k,
		Readings: []TrendReading{reading(MoodMetric, mean(sample[:k]), mean(sample[k:2*k]))},
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
