package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

// usageService implements the UsageService interface
type usageService struct {
	repo   repositories.UsageRepository
	limit  int
	period time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewUsageService creates a usage service. A limit of zero or less
// disables the quota; a zero period never resets it.
func NewUsageService(
	repo repositories.UsageRepository,
	limit int,
	period time.Duration,
	logger *slog.Logger,
) services.UsageService {
	return &usageService{
		repo:   repo,
		limit:  limit,
		period: period,
		now:    time.Now,
		logger: logger,
	}
}

// GetUsage returns the current period's usage, starting a new period
// lazily when the previous one has run out
func (s *usageService) GetUsage(ctx context.Context, userID string) (*models.Usage, error) {
	usage, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get usage: %w", err)
	}

	now := s.now()
	if s.period > 0 && usage.PromptsUsed > 0 && now.Sub(usage.LastResetAt) >= s.period {
		if err := s.repo.Reset(ctx, userID, now); err != nil {
			return nil, fmt.Errorf("reset usage: %w", err)
		}
		s.logger.Info("usage period reset", "user_id", userID, "previous_used", usage.PromptsUsed)
		usage.PromptsUsed = 0
		usage.LastResetAt = now
	}

	return s.withAllowance(usage), nil
}

// CheckQuota fails once the allowance for this period is spent
func (s *usageService) CheckQuota(ctx context.Context, userID string) error {
	if s.limit <= 0 {
		return nil
	}

	usage, err := s.GetUsage(ctx, userID)
	if err != nil {
		return err
	}

	if usage.PromptsUsed >= s.limit {
		s.logger.Info("usage limit reached", "user_id", userID, "used", usage.PromptsUsed, "limit", s.limit)
		return &domain.QuotaExceededError{Used: usage.PromptsUsed, Limit: s.limit}
	}

	return nil
}

// Consume records one analysed save. Callers run it in the save transaction.
func (s *usageService) Consume(ctx context.Context, userID string) (*models.Usage, error) {
	usage, err := s.repo.Increment(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("consume usage: %w", err)
	}
	return s.withAllowance(usage), nil
}

func (s *usageService) withAllowance(usage *models.Usage) *models.Usage {
	usage.Limit = s.limit
	usage.Remaining = 0
	if s.limit > 0 && usage.PromptsUsed < s.limit {
		usage.Remaining = s.limit - usage.PromptsUsed
	}
	return usage
}
