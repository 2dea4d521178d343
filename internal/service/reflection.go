package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"memoir/internal/config"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

// reflectionService implements the ReflectionService interface
type reflectionService struct {
	repo   repositories.ReflectionRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewReflectionService creates a reflection service
func NewReflectionService(repo repositories.ReflectionRepository, logger *slog.Logger) services.ReflectionService {
	return &reflectionService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// ListReflections returns the newest reflections. Out-of-range limits are
// clamped rather than rejected.
func (s *reflectionService) ListReflections(ctx context.Context, userID string, limit int) ([]models.SurpriseReflection, error) {
	switch {
	case limit <= 0:
		limit = config.DefaultReflectionPageSize
	case limit > config.MaxReflectionPageSize:
		limit = config.MaxReflectionPageSize
	}

	reflections, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w", err)
	}
	return reflections, nil
}

// MarkShown records that the client displayed a reflection
func (s *reflectionService) MarkShown(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkShown(ctx, id, userID, s.now()); err != nil {
		return err
	}

	s.logger.Debug("reflection shown", "id", id, "user_id", userID)
	return nil
}
