package repositories

import (
	"context"

	"memoir/internal/domain/models"
)

// EntryRepository defines data access for journal entries
type EntryRepository interface {
	// Create inserts an entry. ID and CreatedAt are assigned by the store.
	Create(ctx context.Context, entry *models.Entry) error

	// CreateAt inserts an entry with a caller-chosen timestamp (seeding only).
	CreateAt(ctx context.Context, entry *models.Entry) error

	// GetByID returns ErrNotFound when the entry is missing or owned by someone else
	GetByID(ctx context.Context, id, userID string) (*models.Entry, error)

	// ListByUser returns every entry of the user, newest first
	ListByUser(ctx context.Context, userID string) ([]models.Entry, error)

	// ListRecent returns at most limit entries, newest first
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Entry, error)

	// DeleteAllByUser bulk-clears a user's entries and returns how many went
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
}

// EntryStore is the read side every analytics view goes through. It holds
// one snapshot per user and must be invalidated after any write.
type EntryStore interface {
	Entries(ctx context.Context, userID string) ([]models.Entry, error)
	Invalidate(userID string)
}
