package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"memoir/internal/analytics"
	"memoir/internal/auth"
	"memoir/internal/repository/cache"
	"memoir/internal/repository/postgres"
	"memoir/internal/service"
)

var (
	seedUserID   string
	seedEmail    string
	seedPassword string
	seedDays     int
	seedPerDay   float64
	seedRandSeed uint64
	seedReset    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo journal entries for a user",
	Long: `Generates pre-analysed demo entries spread over the past --days days and
stores them without calling the language model. The user is either given
with --user-id or created (or found) through the Supabase Admin API with
--email and --password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := loadApp()
		ctx := cmd.Context()

		if a.cfg.Environment == "prod" && seedReset {
			return errors.New("refusing to --reset in the prod environment")
		}
		if seedDays < 1 || seedDays > 366 {
			return fmt.Errorf("--days must be between 1 and 366")
		}

		userID := seedUserID
		if userID == "" {
			if seedEmail == "" || seedPassword == "" {
				return errors.New("either --user-id or --email and --password are required")
			}
			admin := auth.NewAdminClient(a.cfg.SupabaseURL, a.cfg.SupabaseKey)
			id, err := admin.EnsureUser(ctx, seedEmail, seedPassword)
			if err != nil {
				return fmt.Errorf("ensure demo user: %w", err)
			}
			userID = id
		}
		if _, err := uuid.Parse(userID); err != nil {
			return fmt.Errorf("invalid user ID %q: %w", userID, err)
		}

		vocab, err := analytics.LoadVocabulary()
		if err != nil {
			return err
		}

		pool, err := a.connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		entryRepo := postgres.NewEntryRepository(a.repoConfig(pool))
		store := cache.NewEntryStore(entryRepo, a.logger)
		entries := service.NewEntryService(entryRepo, store, nil, nil, nil, nil, nil, a.logger)

		if seedReset {
			deleted, err := entries.ClearEntries(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d existing entries\n", deleted)
		}

		rnd := rand.New(rand.NewPCG(seedRandSeed, seedRandSeed^0x9e3779b97f4a7c15))
		reqs := demoEntries(userID, seedDays, seedPerDay, time.Now(), moodWords(vocab), rnd)
		for _, req := range reqs {
			if _, err := entries.SeedEntry(ctx, req); err != nil {
				return fmt.Errorf("seed entry at %s: %w", req.CreatedAt.Format(time.RFC3339), err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries for user %s\n", len(reqs), userID)
		return nil
	},
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&seedUserID, "user-id", "", "existing user UUID to seed")
	f.StringVar(&seedEmail, "email", "", "demo user email (created when missing)")
	f.StringVar(&seedPassword, "password", "", "demo user password")
	f.IntVar(&seedDays, "days", 60, "how many days back to spread entries over")
	f.Float64Var(&seedPerDay, "per-day", 0.8, "average entries per day")
	f.Uint64Var(&seedRandSeed, "seed", 42, "random seed for reproducible data")
	f.BoolVar(&seedReset, "reset", false, "delete the user's entries first")
}
