package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rosapi/internal/config"
	"rosapi/internal/database"
	"rosapi/internal/database/migration"
	"rosapi/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "rosapi",
	Short: "ROS API - risk assessments kept in GitHub",
	Long: `rosapi serves risk and vulnerability assessments (ROS) that are stored
encrypted in GitHub repositories. Drafts live on their own branch and are sent
for approval through a pull request.`,
	SilenceUsage: true,
	// Running the binary without a subcommand serves the API.
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap loads configuration and builds the process-wide logger.
func bootstrap() (*config.AppConfig, *slog.Logger) {
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.Location(), cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger
}

// openMigrated opens the pool and brings the schema up to date.
func openMigrated(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
