package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

// PostgresUsageRepository implements the UsageRepository interface
type PostgresUsageRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(config *RepositoryConfig) repositories.UsageRepository {
	return &PostgresUsageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get returns the usage row, or a zero row stamped now for new users
func (r *PostgresUsageRepository) Get(ctx context.Context, userID string) (*models.Usage, error) {
	query := fmt.Sprintf(`
		SELECT user_id, prompts_used, last_reset_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.Usage)

	var usage models.Usage
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(&usage.UserID, &usage.PromptsUsed, &usage.LastResetAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return &models.Usage{UserID: userID, LastResetAt: time.Now()}, nil
		}
		return nil, fmt.Errorf("get usage: %w", err)
	}

	return &usage, nil
}

// Increment bumps the counter, creating the row on first use
func (r *PostgresUsageRepository) Increment(ctx context.Context, userID string) (*models.Usage, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, prompts_used, last_reset_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			prompts_used = %s.prompts_used + 1
		RETURNING user_id, prompts_used, last_reset_at
	`, r.tables.Usage, r.tables.Usage)

	var usage models.Usage
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(&usage.UserID, &usage.PromptsUsed, &usage.LastResetAt)
	if err != nil {
		return nil, fmt.Errorf("increment usage: %w", err)
	}

	return &usage, nil
}

// Reset starts a new usage period
func (r *PostgresUsageRepository) Reset(ctx context.Context, userID string, at time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, prompts_used, last_reset_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			prompts_used = 0,
			last_reset_at = EXCLUDED.last_reset_at
	`, r.tables.Usage)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID, at); err != nil {
		return fmt.Errorf("reset usage: %w", err)
	}

	return nil
}
