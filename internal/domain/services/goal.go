package services

import (
	"context"

	"memoir/internal/domain/models"
)

// GoalService manages the goals that prompts and insights nudge toward
type GoalService interface {
	// ListGoals returns goals newest first; a nil status lists every goal
	ListGoals(ctx context.Context, userID string, status *models.GoalStatus) ([]models.Goal, error)

	// CreateGoal adds an active goal
	CreateGoal(ctx context.Context, req *models.CreateGoalRequest) (*models.Goal, error)

	// UpdateGoal applies a partial update; moving to completed stamps completed_at
	UpdateGoal(ctx context.Context, id, userID string, req *models.UpdateGoalRequest) (*models.Goal, error)

	// CompleteGoal is UpdateGoal with status completed
	CompleteGoal(ctx context.Context, id, userID string) (*models.Goal, error)

	DeleteGoal(ctx context.Context, id, userID string) error
}
