package repositories

import (
	"context"

	"memoir/internal/domain/models"
)

// TraitsRepository persists accumulated user traits
type TraitsRepository interface {
	// Get returns nil, nil when no traits exist yet
	Get(ctx context.Context, userID string) (*models.UserTraits, error)

	// Upsert replaces the stored traits
	Upsert(ctx context.Context, traits *models.UserTraits) error
}
