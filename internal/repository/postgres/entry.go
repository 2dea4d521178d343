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

const entryColumns = `id, user_id, title, content, mood, lens_scores, dominant_lens, ai_insight, lens_insights, created_at`

// PostgresEntryRepository implements the EntryRepository interface
type PostgresEntryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(config *RepositoryConfig) repositories.EntryRepository {
	return &PostgresEntryRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts an entry; the database assigns id and created_at
func (r *PostgresEntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, content, mood, lens_scores, dominant_lens, ai_insight, lens_insights)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, r.tables.Entries)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.LensScores,
		entry.DominantLens,
		entry.AIInsight,
		lensInsightsArg(entry.LensInsights),
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	return nil
}

// CreateAt inserts an entry keeping the caller's created_at
func (r *PostgresEntryRepository) CreateAt(ctx context.Context, entry *models.Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, content, mood, lens_scores, dominant_lens, ai_insight, lens_insights, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, r.tables.Entries)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.UserID,
		entry.Title,
		entry.Content,
		entry.Mood,
		entry.LensScores,
		entry.DominantLens,
		entry.AIInsight,
		lensInsightsArg(entry.LensInsights),
		entry.CreatedAt,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("seed entry: %w", err)
	}

	return nil
}

// GetByID retrieves one entry owned by userID
func (r *PostgresEntryRepository) GetByID(ctx context.Context, id, userID string) (*models.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, entryColumns, r.tables.Entries)

	executor := GetExecutor(ctx, r.pool)
	entry, err := scanEntry(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	return entry, nil
}

// ListByUser returns all entries of a user, newest first
func (r *PostgresEntryRepository) ListByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, entryColumns, r.tables.Entries)

	return r.list(ctx, query, userID)
}

// ListRecent returns the newest limit entries of a user
func (r *PostgresEntryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, entryColumns, r.tables.Entries)

	return r.list(ctx, query, userID, limit)
}

// DeleteAllByUser removes every entry of the user
func (r *PostgresEntryRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, r.tables.Entries)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("delete entries: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *PostgresEntryRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Entry, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

func scanEntry(row pgx.Row) (*models.Entry, error) {
	var entry models.Entry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Title,
		&entry.Content,
		&entry.Mood,
		&entry.LensScores,
		&entry.DominantLens,
		&entry.AIInsight,
		&entry.LensInsights,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// lensInsightsArg stores an empty list as NULL
func lensInsightsArg(insights []models.LensInsight) interface{} {
	if len(insights) == 0 {
		return nil
	}
	return insights
}
