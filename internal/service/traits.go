package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"memoir/internal/analytics"
	"memoir/internal/config"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

// traitsService implements the TraitsService interface
type traitsService struct {
	repo       repositories.TraitsRepository
	store      repositories.EntryStore
	classifier services.Classifier
	vocab      *analytics.Vocabulary
	now        func() time.Time
	logger     *slog.Logger
}

// NewTraitsService creates a traits service
func NewTraitsService(
	repo repositories.TraitsRepository,
	store repositories.EntryStore,
	classifier services.Classifier,
	vocab *analytics.Vocabulary,
	logger *slog.Logger,
) services.TraitsService {
	return &traitsService{
		repo:       repo,
		store:      store,
		classifier: classifier,
		vocab:      vocab,
		now:        time.Now,
		logger:     logger,
	}
}

// GetTraits returns empty traits with the default tone for new users
func (s *traitsService) GetTraits(ctx context.Context, userID string) (*models.UserTraits, error) {
	traits, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get traits: %w", err)
	}
	if traits == nil {
		traits = models.NewUserTraits(userID)
	}
	return traits, nil
}

// UpdateFromEntry merges the classifier's extraction into the stored
// traits. Recurring patterns are recomputed from theme detection over the
// whole collection.
func (s *traitsService) UpdateFromEntry(ctx context.Context, entry *models.Entry) (*models.UserTraits, error) {
	ext, err := s.classifier.ExtractTraits(ctx, entry.Content)
	if err != nil {
		return nil, fmt.Errorf("extract traits: %w", err)
	}

	traits, err := s.GetTraits(ctx, entry.UserID)
	if err != nil {
		return nil, err
	}
	traits.Merge(ext, config.MaxTraitItems)

	entries, err := s.store.Entries(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	hits := analytics.DetectThemes(analytics.JoinContent(entries), s.vocab, analytics.DefaultThemeMinCount, analytics.DefaultThemeTopN)
	patterns := make([]string, 0, len(hits))
	for _, hit := range hits {
		patterns = append(patterns, hit.Name)
	}
	traits.RecurringPatterns = patterns
	traits.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, traits); err != nil {
		return nil, fmt.Errorf("save traits: %w", err)
	}

	s.logger.Info("user traits updated",
		"user_id", entry.UserID,
		"themes", len(traits.Themes),
		"values", len(traits.Values),
		"tone", traits.TonePreference,
	)

	return traits, nil
}
