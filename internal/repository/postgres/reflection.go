package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

// PostgresReflectionRepository implements the ReflectionRepository interface
type PostgresReflectionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewReflectionRepository creates a new surprise reflection repository
func NewReflectionRepository(config *RepositoryConfig) repositories.ReflectionRepository {
	return &PostgresReflectionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create appends a reflection. A reflection whose entry was deleted while
// it was being written is stored detached (entry_id NULL), the same state
// ON DELETE SET NULL leaves behind. Inside a transaction the violation is
// returned as is.
func (r *PostgresReflectionRepository) Create(ctx context.Context, reflection *models.SurpriseReflection) error {
	return r.create(ctx, GetExecutor(ctx, r.pool), reflection)
}

func (r *PostgresReflectionRepository) create(ctx context.Context, executor repositories.DBTX, reflection *models.SurpriseReflection) error {
	if reflection.Context == nil {
		reflection.Context = models.JSONMap{}
	}

	err := r.insert(ctx, executor, reflection)
	if err != nil && reflection.EntryID != nil && IsPgForeignKeyError(err) && repositories.GetTx(ctx) == nil {
		r.logger.Debug("entry gone before reflection was stored, detaching",
			"user_id", reflection.UserID,
			"entry_id", *reflection.EntryID,
		)
		reflection.EntryID = nil
		err = r.insert(ctx, executor, reflection)
	}
	if err != nil {
		return fmt.Errorf("create reflection: %w", err)
	}

	return nil
}

func (r *PostgresReflectionRepository) insert(ctx context.Context, executor repositories.DBTX, reflection *models.SurpriseReflection) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, entry_id, reflection_type, content, context)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Reflections)

	return executor.QueryRow(ctx, query,
		reflection.UserID,
		reflection.EntryID,
		string(reflection.ReflectionType),
		reflection.Content,
		reflection.Context,
	).Scan(&reflection.ID, &reflection.CreatedAt)
}

// ListByUser returns the newest reflections first
func (r *PostgresReflectionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.SurpriseReflection, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, entry_id, reflection_type, content, context, created_at, shown_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.Reflections)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reflections: %w", err)
	}
	defer rows.Close()

	reflections := []models.SurpriseReflection{}
	for rows.Next() {
		var ref models.SurpriseReflection
		var refType string
		if err := rows.Scan(
			&ref.ID,
			&ref.UserID,
			&ref.EntryID,
			&refType,
			&ref.Content,
			&ref.Context,
			&ref.CreatedAt,
			&ref.ShownAt,
		); err != nil {
			return nil, fmt.Errorf("scan reflection: %w", err)
		}
		ref.ReflectionType = models.ReflectionType(refType)
		reflections = append(reflections, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reflections: %w", err)
	}

	return reflections, nil
}

// MarkShown stamps shown_at once; later calls keep the first timestamp
func (r *PostgresReflectionRepository) MarkShown(ctx context.Context, id, userID string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET shown_at = COALESCE(shown_at, $3)
		WHERE id = $1 AND user_id = $2
	`, r.tables.Reflections)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID, at)
	if err != nil {
		return fmt.Errorf("mark reflection shown: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reflection %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
