package services

import (
	"context"

	"memoir/internal/domain/models"
)

// TraitsService maintains long-running user traits
type TraitsService interface {
	GetTraits(ctx context.Context, userID string) (*models.UserTraits, error)

	// UpdateFromEntry extracts traits from the entry and merges them in
	UpdateFromEntry(ctx context.Context, entry *models.Entry) (*models.UserTraits, error)
}
