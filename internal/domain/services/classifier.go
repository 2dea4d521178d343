package services

import (
	"context"

	"memoir/internal/domain/models"
)

// LensAnalysis is the structured lens reading of one entry.
type LensAnalysis struct {
	Scores   models.LensScores    `json:"scores"`
	Dominant models.Lens          `json:"dominant"`
	Insights []models.LensInsight `json:"insights"`
}

// SurpriseRequest carries what a surprise reflection is written from.
type SurpriseRequest struct {
	UserID string
	Type   models.ReflectionType
	Entry  *models.Entry
	// Past is a randomly chosen earlier entry; set only for echo reflections.
	Past *models.Entry
}

// Classifier is the narrow boundary to the language model. Every method is
// request/response; implementations must not retry.
type Classifier interface {
	// ClassifyMood returns one label from the configured mood vocabulary
	ClassifyMood(ctx context.Context, text string) (string, error)

	// GenerateInsight writes a short reflection on the entry
	GenerateInsight(ctx context.Context, text string, recentMoods []string, prefs *models.PromptContext) (string, error)

	// GeneratePrompt writes a short journaling prompt
	GeneratePrompt(ctx context.Context, prefs *models.PromptContext) (string, error)

	// AnalyzeLenses scores the five lenses. Scores are clamped to [0,1].
	AnalyzeLenses(ctx context.Context, text string) (*LensAnalysis, error)

	// GenerateSurprise writes a supplementary reflection of the requested type
	GenerateSurprise(ctx context.Context, req *SurpriseRequest) (string, error)

	// ExtractTraits pulls themes, values and tone out of an entry
	ExtractTraits(ctx context.Context, text string) (*models.TraitExtraction, error)
}
