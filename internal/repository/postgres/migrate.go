package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"memoir/internal/repository/postgres/migrations"
)

// RunMigrations applies the embedded schema for the given table prefix.
// Each prefix keeps its own goose version table.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, prefix string, logger *slog.Logger) error {
	if err := os.Setenv("TABLE_PREFIX", prefix); err != nil {
		return fmt.Errorf("set table prefix: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	goose.SetTableName(prefix + "goose_db_version")
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("migrations applied", "prefix", prefix)
	return nil
}
