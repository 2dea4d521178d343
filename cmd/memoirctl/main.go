// Command memoirctl runs maintenance tasks against a memoir database:
// schema migrations, demo data seeding and analytics inspection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"memoir/internal/config"
	"memoir/internal/repository/postgres"
)

var envFile string

// app is the state shared by every subcommand
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

var rootCmd = &cobra.Command{
	Use:           "memoirctl",
	Short:         "Maintenance tool for the memoir journaling backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(migrateCmd, seedCmd, statsCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// loadApp reads configuration the same way the server does
func loadApp() *app {
	_ = godotenv.Load(envFile)
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.Environment == "dev" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &app{cfg: cfg, logger: logger}
}

func (a *app) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if a.cfg.SupabaseDBURL == "" {
		return nil, fmt.Errorf("SUPABASE_DB_URL is not set")
	}
	return postgres.CreateConnectionPool(ctx, a.cfg.SupabaseDBURL)
}

func (a *app) repoConfig(pool *pgxpool.Pool) *postgres.RepositoryConfig {
	return &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(a.cfg.TablePrefix),
		Logger: a.logger,
	}
}
