package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"memoir/internal/domain/models"
)

// UserPreferencesService defines the business logic for user preferences operations
type UserPreferencesService interface {
	// GetPreferences returns default preferences if none exist yet
	GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)

	// UpdatePreferences applies a partial update, creating the row if needed
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error)

	// PromptContext assembles preferences and traits for the classifier
	PromptContext(ctx context.Context, userID string) (*models.PromptContext, error)

	// Location returns the user's time zone, falling back to the server default
	Location(ctx context.Context, userID string) *time.Location
}
