package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"memoir/internal/config"
	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

// goalService implements the GoalService interface
type goalService struct {
	repo   repositories.GoalRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewGoalService creates a goal service
func NewGoalService(repo repositories.GoalRepository, logger *slog.Logger) services.GoalService {
	return &goalService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// ListGoals returns the user's goals, newest first
func (s *goalService) ListGoals(ctx context.Context, userID string, status *models.GoalStatus) ([]models.Goal, error) {
	if status != nil {
		if err := validateGoalStatus(*status); err != nil {
			return nil, fmt.Errorf("%w: status: %v", domain.ErrValidation, err)
		}
	}

	goals, err := s.repo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

// CreateGoal adds an active goal
func (s *goalService) CreateGoal(ctx context.Context, req *models.CreateGoalRequest) (*models.Goal, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.GoalText,
			validation.Required,
			validation.RuneLength(1, config.MaxGoalTextLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Category, validation.RuneLength(0, config.MaxGoalCategoryLength)),
		validation.Field(&req.Notes, validation.RuneLength(0, config.MaxGoalNotesLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.checkActiveRoom(ctx, req.UserID); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:   req.UserID,
		GoalText: strings.TrimSpace(req.GoalText),
		Category: trimOptional(req.Category),
		Status:   models.GoalActive,
		Notes:    trimOptional(req.Notes),
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("goal created", "id", goal.ID, "user_id", goal.UserID)
	return goal, nil
}

// UpdateGoal applies a partial update
func (s *goalService) UpdateGoal(ctx context.Context, id, userID string, req *models.UpdateGoalRequest) (*models.Goal, error) {
	if err := validateGoalUpdate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	goal, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status == models.GoalActive && goal.Status != models.GoalActive {
		if err := s.checkActiveRoom(ctx, userID); err != nil {
			return nil, err
		}
	}

	if req.GoalText != nil {
		goal.GoalText = strings.TrimSpace(*req.GoalText)
	}
	if req.Category.Present {
		goal.Category = trimOptional(req.Category.Value)
	}
	if req.Notes.Present {
		goal.Notes = trimOptional(req.Notes.Value)
	}
	previous := goal.Status
	if req.Status != nil {
		goal.SetStatus(*req.Status, s.now())
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("goal updated", "id", goal.ID, "user_id", userID, "from", previous, "status", goal.Status)
	return goal, nil
}

// CompleteGoal marks the goal completed
func (s *goalService) CompleteGoal(ctx context.Context, id, userID string) (*models.Goal, error) {
	completed := models.GoalCompleted
	return s.UpdateGoal(ctx, id, userID, &models.UpdateGoalRequest{Status: &completed})
}

// DeleteGoal removes the goal
func (s *goalService) DeleteGoal(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("goal deleted", "id", id, "user_id", userID)
	return nil
}

// checkActiveRoom fails when the user already has MaxActiveGoals active goals
func (s *goalService) checkActiveRoom(ctx context.Context, userID string) error {
	active, err := s.repo.CountByStatus(ctx, userID, models.GoalActive)
	if err != nil {
		return err
	}
	if active >= config.MaxActiveGoals {
		return fmt.Errorf("%w: at most %d active goals; complete or pause one first", domain.ErrValidation, config.MaxActiveGoals)
	}
	return nil
}

func validateGoalUpdate(req *models.UpdateGoalRequest) error {
	errs := validation.Errors{}
	if req.GoalText != nil {
		errs["goal_text"] = validation.Validate(*req.GoalText,
			validation.Required,
			validation.RuneLength(1, config.MaxGoalTextLength),
			validation.By(notBlank),
		)
	}
	if req.Status != nil {
		errs["status"] = validateGoalStatus(*req.Status)
	}
	if req.Category.Present && req.Category.Value != nil {
		errs["category"] = validation.Validate(*req.Category.Value, validation.RuneLength(0, config.MaxGoalCategoryLength))
	}
	if req.Notes.Present && req.Notes.Value != nil {
		errs["notes"] = validation.Validate(*req.Notes.Value, validation.RuneLength(0, config.MaxGoalNotesLength))
	}
	return errs.Filter()
}

func validateGoalStatus(status models.GoalStatus) error {
	return validation.Validate(status,
		validation.Required,
		validation.In(models.GoalActive, models.GoalCompleted, models.GoalPaused),
	)
}
