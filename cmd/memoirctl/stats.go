package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"memoir/internal/analytics"
	"memoir/internal/repository/cache"
	"memoir/internal/repository/postgres"
	"memoir/internal/service"
)

var statsUserID string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a user's analytics dashboard as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := uuid.Parse(statsUserID); err != nil {
			return fmt.Errorf("--user-id must be a UUID: %w", err)
		}

		a := loadApp()
		ctx := cmd.Context()

		vocab, err := analytics.LoadVocabulary()
		if err != nil {
			return err
		}

		pool, err := a.connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		rc := a.repoConfig(pool)
		store := cache.NewEntryStore(postgres.NewEntryRepository(rc), a.logger)
		prefs := service.NewUserPreferencesService(
			postgres.NewUserPreferencesRepository(rc),
			postgres.NewTraitsRepository(rc),
			postgres.NewGoalRepository(rc),
			a.cfg.DefaultTimezone,
			a.logger,
		)
		dashboard, err := service.NewAnalyticsService(store, prefs, vocab, a.logger).Dashboard(ctx, statsUserID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dashboard)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsUserID, "user-id", "", "user UUID")
	_ = statsCmd.MarkFlagRequired("user-id")
}
