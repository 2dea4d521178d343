package repositories

import (
	"context"

	"memoir/internal/domain/models"
)

// GoalRepository stores user goals. Every lookup is scoped by user.
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error

	// ListByUser returns goals newest first; a nil status lists every goal
	ListByUser(ctx context.Context, userID string, status *models.GoalStatus) ([]models.Goal, error)

	// CountByStatus counts the user's goals in one status
	CountByStatus(ctx context.Context, userID string, status models.GoalStatus) (int, error)

	// GetByID returns ErrNotFound when the goal is missing or foreign
	GetByID(ctx context.Context, id, userID string) (*models.Goal, error)

	// Update writes text, category, status, notes and completed_at
	Update(ctx context.Context, goal *models.Goal) error

	Delete(ctx context.Context, id, userID string) error
}
