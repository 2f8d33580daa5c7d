package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_ros_records",
		SQL: `CREATE TABLE IF NOT EXISTS ros_records (
  owner       TEXT        NOT NULL,
  repository  TEXT        NOT NULL,
  id          TEXT        NOT NULL,
  branch      TEXT        NOT NULL,
  state       TEXT        NOT NULL CHECK (state IN ('Draft', 'SentForApproval', 'Published')),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (owner, repository, id)
);`,
	},
	{
		Name: "create_index_ros_records_state",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ros_records_state ON ros_records (state);`,
	},
	{
		Name: "create_index_ros_records_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_ros_records_updated_at ON ros_records (updated_at);`,
	},
}

const sentinelQuery = "SELECT to_regclass('public.ros_records') IS NOT NULL"

// EnsureMigrated checks if the 'ros_records' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
