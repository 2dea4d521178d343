package models

import (
	"strings"
	"time"
)

// DefaultTone is used until trait extraction has produced a tone.
const DefaultTone = "balanced"

// UserTraits accumulates long-running patterns across a user's entries.
type UserTraits struct {
	UserID            string    `json:"user_id" db:"user_id"`
	Themes            []string  `json:"themes" db:"themes"`
	Values            []string  `json:"values" db:"values"`
	TonePreference    string    `json:"tone_preference" db:"tone_preference"`
	RecurringPatterns []string  `json:"recurring_patterns" db:"recurring_patterns"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// TraitExtraction is what the classifier returns for a single entry.
type TraitExtraction struct {
	Themes []string `json:"themes"`
	Values []string `json:"values"`
	Tone   string   `json:"tone"`
}

// NewUserTraits returns empty traits with the default tone.
func NewUserTraits(userID string) *UserTraits {
	return &UserTraits{
		UserID:            userID,
		Themes:            []string{},
		Values:            []string{},
		TonePreference:    DefaultTone,
		RecurringPatterns: []string{},
	}
}

// Merge folds an extraction into the traits by set union, keeping existing
// items first and capping each list at max. A blank tone leaves the current one.
func (t *UserTraits) Merge(ext *TraitExtraction, max int) {
	if ext == nil {
		return
	}
	t.Themes = unionCapped(t.Themes, ext.Themes, max)
	t.Values = unionCapped(t.Values, ext.Values, max)
	if tone := strings.TrimSpace(ext.Tone); tone != "" {
		t.TonePreference = tone
	}
	if t.TonePreference == "" {
		t.TonePreference = DefaultTone
	}
}

func unionCapped(existing, incoming []string, max int) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	out := make([]string, 0, len(existing)+len(incoming))
	for _, group := range [][]string{existing, incoming} {
		for _, item := range group {
			item = strings.ToLower(strings.TrimSpace(item))
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
