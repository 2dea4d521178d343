package analytics

import (
	"memoir/internal/domain/models"
)

// Share is one category's slice of a distribution.
type Share struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Distribution counts labelled entries per category. Shares are in
// first-encountered order; Dominant breaks ties the same way.
type Distribution struct {
	Shares   []Share `json:"shares"`
	Dominant string  `json:"dominant,omitempty"`
	Total    int     `json:"total"`
	NoData   bool    `json:"no_data"`
}

// Share returns the share for label, if present.
func (d Distribution) Share(label string) (Share, bool) {
	for _, s := range d.Shares {
		if s.Label == label {
			return s, true
		}
	}
	return Share{}, false
}

// MoodDistribution counts raw mood labels over entries that have one.
func MoodDistribution(entries []models.Entry) Distribution {
	labels := make([]string, 0, len(entries))
	for i := range entries {
		if m := entries[i].MoodLabel(); m != "" {
			labels = append(labels, m)
		}
	}
	return distribution(labels)
}

// CategoryDistribution folds moods onto their basic category before counting.
// Moods outside the vocabulary are skipped.
func CategoryDistribution(entries []models.Entry, vocab *Vocabulary) Distribution {
	labels := make([]string, 0, len(entries))
	for i := range entries {
		if cat, ok := vocab.Category(entries[i].MoodLabel()); ok {
			labels = append(labels, cat)
		}
	}
	return distribution(labels)
}

// DominantLensDistribution counts each scored entry's strongest dimension.
func DominantLensDistribution(entries []models.Entry) Distribution {
	labels := make([]string, 0, len(entries))
	for i := range entries {
		if entries[i].LensScores != nil {
			labels = append(labels, string(entries[i].LensScores.Dominant()))
		}
	}
	return distribution(labels)
}

func distribution(labels []string) Distribution {
	if len(labels) == 0 {
		return Distribution{Shares: []Share{}, NoData: true}
	}

	index := make(map[string]int)
	shares := make([]Share, 0)
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(shares)
			index[l] = i
			shares = append(shares, Share{Label: l})
		}
		shares[i].Count++
	}

	total := len(labels)
	dominant := 0
	for i := range shares {
		shares[i].Percentage = float64(shares[i].Count) / float64(total) * 100
		if shares[i].Count > shares[dominant].Count {
			dominant = i
		}
	}

	return Distribution{
		Shares:   shares,
		Dominant: shares[dominant].Label,
		Total:    total,
	}
}
