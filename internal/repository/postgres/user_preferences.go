package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

const preferencesColumns = `user_id, preferences, created_at, updated_at`

// PostgresUserPreferencesRepository stores the namespaced preferences
// document in one JSONB column per user.
type PostgresUserPreferencesRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserPreferencesRepository creates a new PostgresUserPreferencesRepository
func NewUserPreferencesRepository(config *RepositoryConfig) repositories.UserPreferencesRepository {
	return &PostgresUserPreferencesRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByUserID returns nil, nil when the user has no row yet
func (r *PostgresUserPreferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1`, preferencesColumns, r.tables.UserPreferences)

	prefs, err := scanPreferences(GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user preferences: %w", err)
	}
	return prefs, nil
}

// GetTimezone reads journal.timezone without decoding the whole document.
// Analytics calls it on every request.
func (r *PostgresUserPreferencesRepository) GetTimezone(ctx context.Context, userID uuid.UUID) (string, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(preferences #>> '{journal,timezone}', '')
		FROM %s
		WHERE user_id = $1
	`, r.tables.UserPreferences)

	var tz string
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID).Scan(&tz)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", nil
		}
		return "", fmt.Errorf("get timezone: %w", err)
	}
	return tz, nil
}

// Upsert writes the whole document; callers merge namespaces first.
// created_at is kept from the first insert.
func (r *PostgresUserPreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	if prefs.Preferences == nil {
		prefs.Preferences = models.JSONMap{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			updated_at = EXCLUDED.updated_at
		RETURNING %s
	`, r.tables.UserPreferences, preferencesColumns)

	row := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		prefs.UserID,
		prefs.Preferences,
		prefs.CreatedAt,
		prefs.UpdatedAt,
	)
	saved, err := scanPreferences(row)
	if err != nil {
		return fmt.Errorf("upsert user preferences: %w", err)
	}
	*prefs = *saved

	r.logger.Debug("user preferences saved", "user_id", prefs.UserID)
	return nil
}

func scanPreferences(row pgx.Row) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	if err := row.Scan(&prefs.UserID, &prefs.Preferences, &prefs.CreatedAt, &prefs.UpdatedAt); err != nil {
		return nil, err
	}
	return &prefs, nil
}
