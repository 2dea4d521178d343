package analytics

import (
	"sort"
	"strings"

	"memoir/internal/domain/models"
)

// Theme detection defaults.
const (
	DefaultThemeMinCount = 3
	DefaultThemeTopN     = 3
)

// ThemeHit is a theme and its total keyword matches.
type ThemeHit struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// JoinContent concatenates entry text, lowercased, one entry per line.
func JoinContent(entries []models.Entry) string {
	var b strings.Builder
	for i := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.ToLower(entries[i].Content))
	}
	return b.String()
}

// DetectThemes counts word-boundary keyword matches per theme and returns the
// themes with at least minCount hits, most frequent first, capped at topN.
// A keyword listed under two themes counts toward both.
func DetectThemes(text string, vocab *Vocabulary, minCount, topN int) []ThemeHit {
	hits := make([]ThemeHit, 0, len(vocab.Themes))
	for i, theme := range vocab.Themes {
		count := 0
		for _, re := range vocab.patterns[i] {
			count += len(re.FindAllStringIndex(text, -1))
		}
		if count >= minCount && count > 0 {
			hits = append(hits, ThemeHit{Name: theme.Name, Count: count})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Count > hits[j].Count })
	if topN > 0 && len(hits) > topN {
		hits = hits[:topN]
	}
	return hits
}

// ThemeConnection is a pair of themes that show up in the same entries.
type ThemeConnection struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Strength int    `json:"strength"`
}

// ThemeConnections counts, for every pair of themes, the entries in which
// both appear at least once. Pairs are ordered strongest first, then by
// theme table order, capped at topN.
func ThemeConnections(entries []models.Entry, vocab *Vocabulary, topN int) []ThemeConnection {
	n := len(vocab.Themes)
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, n)
	}

	for e := range entries {
		text := strings.ToLower(entries[e].Content)
		present := make([]bool, n)
		for i := range vocab.Themes {
			for _, re := range vocab.patterns[i] {
				if re.MatchString(text) {
					present[i] = true
					break
				}
			}
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if present[i] && present[j] {
					counts[i][j]++
				}
			}
		}
	}

	out := make([]ThemeConnection, 0)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if counts[i][j] > 0 {
				out = append(out, ThemeConnection{
					From:     vocab.Themes[i].Name,
					To:       vocab.Themes[j].Name,
					Strength: counts[i][j],
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Strength > out[j].Strength })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
