package repositories

import (
	"context"
	"time"

	"memoir/internal/domain/models"
)

// UsageRepository tracks analysed saves per user
type UsageRepository interface {
	// Get returns a zero usage row (not an error) for users who never saved
	Get(ctx context.Context, userID string) (*models.Usage, error)

	// Increment bumps prompts_used and returns the new row
	Increment(ctx context.Context, userID string) (*models.Usage, error)

	// Reset zeroes the counter and stamps last_reset_at
	Reset(ctx context.Context, userID string, at time.Time) error
}
