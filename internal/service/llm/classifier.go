package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	llmprovider "github.com/haowjy/meridian-llm-go"

	"memoir/internal/analytics"
	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/services"
)

// insightThreshold is the lens score above which an insight is kept.
const insightThreshold = 0.3

// Generator is the part of llmprovider.Provider the classifier needs.
type Generator interface {
	GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error)
}

// ClassifierConfig selects the model and vocabulary.
type ClassifierConfig struct {
	Provider string
	Model    string
	Vocab    *analytics.Vocabulary
}

// Classifier implements services.Classifier with one request per call and
// no retries.
type Classifier struct {
	gen      Generator
	provider string
	model    string
	vocab    *analytics.Vocabulary
	labels   []string
	logger   *slog.Logger
}

var _ services.Classifier = (*Classifier)(nil)

// NewClassifier wraps a provider
func NewClassifier(gen Generator, cfg ClassifierConfig, logger *slog.Logger) *Classifier {
	vocab := cfg.Vocab
	if vocab == nil {
		vocab = analytics.DefaultVocabulary()
	}
	return &Classifier{
		gen:      gen,
		provider: cfg.Provider,
		model:    cfg.Model,
		vocab:    vocab,
		labels:   sortedKeys(vocab.Moods),
		logger:   logger,
	}
}

// ClassifyMood returns a label from the vocabulary. If the model answers
// with more than one word, the first known label in the answer wins.
func (c *Classifier) ClassifyMood(ctx context.Context, text string) (string, error) {
	answer, err := c.complete(ctx, "mood", moodPrompt(text, c.labels))
	if err != nil {
		return "", err
	}

	if label, ok := c.vocab.Normalize(answer); ok {
		return label, nil
	}
	for _, word := range strings.Fields(answer) {
		if label, ok := c.vocab.Normalize(word); ok {
			return label, nil
		}
	}

	c.logger.Warn("unrecognised mood label", "answer", answer)
	return "", &domain.UpstreamError{Provider: c.provider, Err: fmt.Errorf("unrecognised mood %q", answer)}
}

func (c *Classifier) GenerateInsight(ctx context.Context, text string, recentMoods []string, prefs *models.PromptContext) (string, error) {
	return c.complete(ctx, "insight", insightPrompt(text, recentMoods, prefs))
}

func (c *Classifier) GeneratePrompt(ctx context.Context, prefs *models.PromptContext) (string, error) {
	return c.complete(ctx, "prompt", writingPrompt(prefs))
}

type lensAnswer struct {
	Scores   map[string]float64   `json:"scores"`
	Insights []models.LensInsight `json:"insights"`
}

// AnalyzeLenses clamps every score to [0,1], defaults missing lenses to 0
// and keeps insights only for known lenses scoring above the threshold.
func (c *Classifier) AnalyzeLenses(ctx context.Context, text string) (*services.LensAnalysis, error) {
	answer, err := c.complete(ctx, "lenses", lensPrompt(text))
	if err != nil {
		return nil, err
	}

	var parsed lensAnswer
	if err := decodeJSON(answer, &parsed); err != nil {
		return nil, &domain.UpstreamError{Provider: c.provider, Err: fmt.Errorf("parse lens analysis: %w", err)}
	}

	var scores models.LensScores
	for _, lens := range models.Lenses {
		scores.Set(lens, clamp(parsed.Scores[string(lens)]))
	}

	insights := []models.LensInsight{}
	for _, in := range parsed.Insights {
		lens := models.Lens(strings.ToLower(strings.TrimSpace(string(in.Lens))))
		if !isLens(lens) || scores.Score(lens) <= insightThreshold {
			continue
		}
		in.Lens = lens
		insights = append(insights, in)
	}

	return &services.LensAnalysis{
		Scores:   scores,
		Dominant: scores.Dominant(),
		Insights: insights,
	}, nil
}

func (c *Classifier) GenerateSurprise(ctx context.Context, req *services.SurpriseRequest) (string, error) {
	if req == nil || req.Entry == nil {
		return "", fmt.Errorf("%w: surprise needs an entry", domain.ErrValidation)
	}
	return c.complete(ctx, "surprise", surprisePrompt(req))
}

// ExtractTraits falls back to an empty extraction when the answer is not
// JSON; traits are best effort.
func (c *Classifier) ExtractTraits(ctx context.Context, text string) (*models.TraitExtraction, error) {
	answer, err := c.complete(ctx, "traits", traitsPrompt(text))
	if err != nil {
		return nil, err
	}

	var ext models.TraitExtraction
	if err := decodeJSON(answer, &ext); err != nil {
		c.logger.Warn("failed to parse traits", "error", err)
		return &models.TraitExtraction{Themes: []string{}, Values: []string{}, Tone: models.DefaultTone}, nil
	}
	return &ext, nil
}

// complete sends a single user message and returns the joined text blocks
func (c *Classifier) complete(ctx context.Context, op, prompt string) (string, error) {
	req := &llmprovider.GenerateRequest{
		Model: c.model,
		Messages: []llmprovider.Message{
			{
				Role: "user",
				Blocks: []*llmprovider.Block{
					{BlockType: "text", Sequence: 0, TextContent: &prompt},
				},
			},
		},
	}

	resp, err := c.gen.GenerateResponse(ctx, req)
	if err != nil {
		mapped := mapProviderError(c.provider, err)
		c.logger.Error("llm call failed", "op", op, "provider", c.provider, "error", err)
		return "", mapped
	}

	var parts []string
	for _, block := range resp.Blocks {
		if block.BlockType != "text" || block.TextContent == nil {
			continue
		}
		parts = append(parts, *block.TextContent)
	}
	text := strings.TrimSpace(strings.Join(parts, ""))

	c.logger.Debug("llm call complete",
		"op", op,
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"stop_reason", resp.StopReason,
	)

	if text == "" {
		return "", &domain.UpstreamError{Provider: c.provider, Err: fmt.Errorf("%s: empty response", op)}
	}
	return text, nil
}

// mapProviderError turns provider failures into domain errors. Context
// cancellation passes through untouched.
func mapProviderError(provider string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return &domain.RateLimitedError{Provider: provider, Err: err}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return &domain.RateLimitedError{Provider: provider, Err: err}
	}

	return &domain.UpstreamError{Provider: provider, Err: err}
}

var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareJSON   = regexp.MustCompile(`(?s)\{.*\}`)
)

// decodeJSON finds a JSON object inside a fenced block or bare braces
func decodeJSON(answer string, dest interface{}) error {
	raw := answer
	if m := fencedJSON.FindStringSubmatch(answer); m != nil {
		raw = m[1]
	} else if m := bareJSON.FindString(answer); m != "" {
		raw = m
	}
	return json.Unmarshal([]byte(raw), dest)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func isLens(l models.Lens) bool {
	for _, lens := range models.Lenses {
		if lens == l {
			return true
		}
	}
	return false
}
