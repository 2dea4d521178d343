package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

// PostgresTraitsRepository implements the TraitsRepository interface
type PostgresTraitsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTraitsRepository creates a new traits repository
func NewTraitsRepository(config *RepositoryConfig) repositories.TraitsRepository {
	return &PostgresTraitsRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Get returns the user's traits, or nil when none were extracted yet
func (r *PostgresTraitsRepository) Get(ctx context.Context, userID string) (*models.UserTraits, error) {
	query := fmt.Sprintf(`
		SELECT user_id, themes, core_values, tone_preference, recurring_patterns, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.UserTraits)

	var traits models.UserTraits
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID).Scan(
		&traits.UserID,
		&traits.Themes,
		&traits.Values,
		&traits.TonePreference,
		&traits.RecurringPatterns,
		&traits.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user traits: %w", err)
	}

	return &traits, nil
}

// Upsert writes the merged traits
func (r *PostgresTraitsRepository) Upsert(ctx context.Context, traits *models.UserTraits) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, themes, core_values, tone_preference, recurring_patterns, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			themes = EXCLUDED.themes,
			core_values = EXCLUDED.core_values,
			tone_preference = EXCLUDED.tone_preference,
			recurring_patterns = EXCLUDED.recurring_patterns,
			updated_at = EXCLUDED.updated_at
	`, r.tables.UserTraits)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		traits.UserID,
		nonNil(traits.Themes),
		nonNil(traits.Values),
		traits.TonePreference,
		nonNil(traits.RecurringPatterns),
		traits.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user traits: %w", err)
	}

	return nil
}

// nonNil keeps NOT NULL text[] columns from receiving NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
