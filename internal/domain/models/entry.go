package models

import (
	"time"
)

// Lens is one of the five fixed dimensions an entry is scored on.
type Lens string

const (
	LensConnection Lens = "connection"
	LensVitality   Lens = "vitality"
	LensPurpose    Lens = "purpose"
	LensGrowth     Lens = "growth"
	LensHarmony    Lens = "harmony"
)

// Lenses lists every dimension in canonical order. Iteration order matters
// for tie-breaks, so callers should range over this instead of a map.
var Lenses = []Lens{LensConnection, LensVitality, LensPurpose, LensGrowth, LensHarmony}

// LensScores holds one intensity in [0,1] per dimension.
type LensScores struct {
	Connection float64 `json:"connection"`
	Vitality   float64 `json:"vitality"`
	Purpose    float64 `json:"purpose"`
	Growth     float64 `json:"growth"`
	Harmony    float64 `json:"harmony"`
}

// Score returns the value for a single dimension.
func (s LensScores) Score(l Lens) float64 {
	switch l {
	case LensConnection:
		return s.Connection
	case LensVitality:
		return s.Vitality
	case LensPurpose:
		return s.Purpose
	case LensGrowth:
		return s.Growth
	case LensHarmony:
		return s.Harmony
	default:
		return 0
	}
}

// Set assigns the value for a single dimension. Unknown lenses are ignored.
func (s *LensScores) Set(l Lens, v float64) {
	switch l {
	case LensConnection:
		s.Connection = v
	case LensVitality:
		s.Vitality = v
	case LensPurpose:
		s.Purpose = v
	case LensGrowth:
		s.Growth = v
	case LensHarmony:
		s.Harmony = v
	}
}

// Dominant returns the highest scoring dimension (first in Lenses order on ties).
func (s LensScores) Dominant() Lens {
	best := Lenses[0]
	for _, l := range Lenses[1:] {
		if s.Score(l) > s.Score(best) {
			best = l
		}
	}
	return best
}

// LensInsight is a short interpretation attached to one strongly scored dimension.
type LensInsight struct {
	Lens           Lens   `json:"lens"`
	Signal         string `json:"signal"`
	Interpretation string `json:"interpretation"`
}

// Entry is one journal entry plus the analysis attached at save time.
type Entry struct {
	ID           string        `json:"id" db:"id"`
	UserID       string        `json:"user_id" db:"user_id"`
	Title        *string       `json:"title,omitempty" db:"title"`
	Content      string        `json:"content" db:"content"`
	Mood         *string       `json:"mood,omitempty" db:"mood"`
	LensScores   *LensScores   `json:"lens_scores,omitempty" db:"lens_scores"`
	DominantLens *Lens         `json:"dominant_lens,omitempty" db:"dominant_lens"`
	AIInsight    *string       `json:"ai_insight,omitempty" db:"ai_insight"`
	LensInsights []LensInsight `json:"lens_insights,omitempty" db:"lens_insights"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// MoodLabel returns the mood or "" when the entry is unlabelled.
func (e *Entry) MoodLabel() string {
	if e.Mood == nil {
		return ""
	}
	return *e.Mood
}

// CreateEntryRequest is the input to the save path.
type CreateEntryRequest struct {
	UserID  string  `json:"-"`
	Title   *string `json:"title,omitempty"`
	Content string  `json:"content"`
}

// SeedEntryRequest inserts a pre-analysed entry (CLI seeding and imports).
// CreatedAt is honoured only by the seeding path.
type SeedEntryRequest struct {
	UserID     string      `json:"-"`
	Title      *string     `json:"title,omitempty"`
	Content    string      `json:"content"`
	Mood       *string     `json:"mood,omitempty"`
	LensScores *LensScores `json:"lens_scores,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}
