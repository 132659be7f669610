// Command tabernacle runs the Praise Tabernacle request-intake API and its maintenance tasks.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"praisetabernacle/config"
	_ "praisetabernacle/docs"
)

var rootCmd = &cobra.Command{
	Use:           "tabernacle",
	Short:         "Praise Tabernacle form intake API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(genSecretCmd)
	rootCmd.AddCommand(promiseCmd)
}

// loadConfig loads the environment configuration and builds the matching logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// @title						Praise Tabernacle API
// @version					1.0
// @description				Form intake, RSVP, prayer wall and daily promise endpoints for the church website.
// @BasePath					/
// @securityDefinitions.basic	BasicAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
