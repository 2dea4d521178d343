package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"memoir/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix          string
	Entries         string
	UserTraits      string
	Reflections     string
	Usage           string
	UserPreferences string
	Goals           string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:          prefix,
		Entries:         fmt.Sprintf("%sentries", prefix),
		UserTraits:      fmt.Sprintf("%suser_traits", prefix),
		Reflections:     fmt.Sprintf("%ssurprise_reflections", prefix),
		Usage:           fmt.Sprintf("%suser_usage", prefix),
		UserPreferences: fmt.Sprintf("%suser_preferences", prefix),
		Goals:           fmt.Sprintf("%suser_goals", prefix),
	}
}

// CreateConnectionPool creates a pgx pool.
//
// Port 6543 is Supabase's transaction pooler (PgBouncer), which does not
// support prepared statements. Unless the connection string already sets
// default_query_exec_mode, the pool switches to QueryExecModeCacheDescribe
// there: it keeps the extended protocol (needed for JSONB maps) without
// creating named statements.
//
// Table prefixes are interpolated into the SQL text before it is sent, so
// each environment prepares its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when there is none.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
