package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

const goalColumns = `id, user_id, goal_text, category, status, notes, created_at, updated_at, completed_at`

// PostgresGoalRepository implements the GoalRepository interface
type PostgresGoalRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(config *RepositoryConfig) repositories.GoalRepository {
	return &PostgresGoalRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a goal; the database assigns id and timestamps
func (r *PostgresGoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, goal_text, category, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Goals)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		goal.UserID,
		goal.GoalText,
		goal.Category,
		string(goal.Status),
		goal.Notes,
	).Scan(&goal.ID, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}

	return nil
}

// ListByUser returns the user's goals newest first, optionally by status
func (r *PostgresGoalRepository) ListByUser(ctx context.Context, userID string, status *models.GoalStatus) ([]models.Goal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, id DESC
	`, goalColumns, r.tables.Goals)

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, statusArg)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, *goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}

	return goals, nil
}

// CountByStatus counts the user's goals in status
func (r *PostgresGoalRepository) CountByStatus(ctx context.Context, userID string, status models.GoalStatus) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1 AND status = $2`, r.tables.Goals)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID, string(status)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}
	return count, nil
}

// GetByID retrieves one goal owned by userID
func (r *PostgresGoalRepository) GetByID(ctx context.Context, id, userID string) (*models.Goal, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, goalColumns, r.tables.Goals)

	executor := GetExecutor(ctx, r.pool)
	goal, err := scanGoal(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}

	return goal, nil
}

// Update writes every mutable column and refreshes updated_at
func (r *PostgresGoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET goal_text = $3, category = $4, status = $5, notes = $6, completed_at = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`, r.tables.Goals)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.GoalText,
		goal.Category,
		string(goal.Status),
		goal.Notes,
		goal.CompletedAt,
	).Scan(&goal.UpdatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("goal %s: %w", goal.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update goal: %w", err)
	}

	return nil
}

// Delete removes one goal owned by userID
func (r *PostgresGoalRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Goals)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var goal models.Goal
	var status string
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.GoalText,
		&goal.Category,
		&status,
		&goal.Notes,
		&goal.CreatedAt,
		&goal.UpdatedAt,
		&goal.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	goal.Status = models.GoalStatus(status)
	return &goal, nil
}
