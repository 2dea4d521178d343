package analytics

import (
	"memoir/internal/domain/models"
)

// LensLevel is a coarse label for an averaged lens score.
type LensLevel string

const (
	LevelRising LensLevel = "rising"
	LevelSteady LensLevel = "steady"
	LevelSoft   LensLevel = "soft"
	LevelQuiet  LensLevel = "quiet"
)

// Level thresholds. A value sitting exactly on a boundary takes the lower label.
const (
	risingThreshold = 0.6
	steadyThreshold = 0.4
	softThreshold   = 0.2
)

// Level classifies an averaged score.
func Level(avg float64) LensLevel {
	switch {
	case avg > risingThreshold:
		return LevelRising
	case avg > steadyThreshold:
		return LevelSteady
	case avg > softThreshold:
		return LevelSoft
	default:
		return LevelQuiet
	}
}

// LensReading is one dimension's average over the window.
type LensReading struct {
	Lens    models.Lens `json:"lens"`
	Average float64     `json:"average"`
	Level   LensLevel   `json:"level"`
}

// LensSummary averages lens scores over the newest scored entries.
type LensSummary struct {
	Readings []LensReading `json:"readings"`
	Dominant models.Lens   `json:"dominant,omitempty"`
	Sample   int           `json:"sample"`
	NoData   bool          `json:"no_data"`
}

// scored returns entries carrying lens scores, preserving order.
func scored(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for i := range entries {
		if entries[i].LensScores != nil {
			out = append(out, entries[i])
		}
	}
	return out
}

// averageScores is the per-dimension mean. Callers guarantee len > 0.
func averageScores(entries []models.Entry) models.LensScores {
	var sum models.LensScores
	for i := range entries {
		for _, l := range models.Lenses {
			sum.Set(l, sum.Score(l)+entries[i].LensScores.Score(l))
		}
	}
	n := float64(len(entries))
	var avg models.LensScores
	for _, l := range models.Lenses {
		avg.Set(l, sum.Score(l)/n)
	}
	return avg
}

// LensAverages averages each dimension over the newest window scored entries
// (all of them when window <= 0). Entries must be newest first.
func LensAverages(entries []models.Entry, window int) LensSummary {
	sample := scored(entries)
	if window > 0 && len(sample) > window {
		sample = sample[:window]
	}
	if len(sample) == 0 {
		return LensSummary{Readings: []LensReading{}, NoData: true}
	}

	avg := averageScores(sample)
	readings := make([]LensReading, 0, len(models.Lenses))
	for _, l := range models.Lenses {
		readings = append(readings, LensReading{
			Lens:    l,
			Average: avg.Score(l),
			Level:   Level(avg.Score(l)),
		})
	}

	return LensSummary{
		Readings: readings,
		Dominant: avg.Dominant(),
		Sample:   len(sample),
	}
}
