package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"memoir/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Applies the embedded SQL migrations to the database in SUPABASE_DB_URL.
Tables are created with the environment's TABLE_PREFIX.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := loadApp()

		pool, err := a.connect(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := postgres.RunMigrations(cmd.Context(), pool, a.cfg.TablePrefix, a.logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (prefix %q)\n", a.cfg.TablePrefix)
		return nil
	},
}
