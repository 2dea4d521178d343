package services

import (
	"context"

	"memoir/internal/domain/models"
)

// UsageService enforces the free-tier allowance of analysed saves
type UsageService interface {
	GetUsage(ctx context.Context, userID string) (*models.Usage, error)

	// CheckQuota returns a QuotaExceededError when no analyses are left
	CheckQuota(ctx context.Context, userID string) error

	// Consume records one analysed save
	Consume(ctx context.Context, userID string) (*models.Usage, error)
}
