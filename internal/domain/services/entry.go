package services

import (
	"context"

	"memoir/internal/domain/models"
)

// EntryService defines the journaling write and read paths
type EntryService interface {
	// CreateEntry validates, analyses and persists an entry. Analysis failures
	// abort the save.
	CreateEntry(ctx context.Context, req *models.CreateEntryRequest) (*models.Entry, error)

	// SeedEntry persists a pre-analysed entry without calling the classifier
	SeedEntry(ctx context.Context, req *models.SeedEntryRequest) (*models.Entry, error)

	GetEntry(ctx context.Context, id, userID string) (*models.Entry, error)
	ListEntries(ctx context.Context, userID string) ([]models.Entry, error)

	// ClearEntries removes every entry of the user
	ClearEntries(ctx context.Context, userID string) (int64, error)

	// GeneratePrompt returns a writing prompt shaped by the user's preferences
	GeneratePrompt(ctx context.Context, userID string) (string, error)
}

// EntrySaveListener is told about every persisted entry. Implementations
// must return without blocking on any network call.
type EntrySaveListener interface {
	OnEntrySaved(ctx context.Context, entry *models.Entry)
}
