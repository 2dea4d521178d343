package repositories

import (
	"context"
	"time"

	"memoir/internal/domain/models"
)

// ReflectionRepository stores surprise reflections. Rows are never updated
// except to stamp shown_at.
type ReflectionRepository interface {
	Create(ctx context.Context, reflection *models.SurpriseReflection) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.SurpriseReflection, error)
	MarkShown(ctx context.Context, id, userID string, at time.Time) error
}
