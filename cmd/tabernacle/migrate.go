package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"praisetabernacle/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending PostgreSQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		db, err := postgres.Open(cmd.Context(), cfg.DBUrl)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		logger.Info("migrations applied")
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	},
}
