package repositories

import (
	"context"

	"github.com/google/uuid"

	"memoir/internal/domain/models"
)

// UserPreferencesRepository defines the interface for user preferences data access
type UserPreferencesRepository interface {
	// GetByUserID returns nil if the user hasn't set any preferences yet
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)

	// GetTimezone returns the journal.timezone setting, or "" when unset
	GetTimezone(ctx context.Context, userID uuid.UUID) (string, error)

	// Upsert creates or updates user preferences
	Upsert(ctx context.Context, prefs *models.UserPreferences) error
}
