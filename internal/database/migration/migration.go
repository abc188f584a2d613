package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

const sentinelTable = "export_records"

type migrationStep struct {
	Name string
	SQL  string
}

// ids are generated by the application, so no uuid extension is needed.
var steps = []migrationStep{
	{
		Name: "create_table_export_records",
		SQL: `CREATE TABLE IF NOT EXISTS export_records (
  id           UUID        PRIMARY KEY,
  request_id   TEXT        NOT NULL DEFAULT '',
  title        TEXT        NOT NULL,
  format       TEXT        NOT NULL CHECK (format IN ('excel', 'csv', 'pdf')),
  row_count    INTEGER     NOT NULL CHECK (row_count >= 0),
  column_count INTEGER     NOT NULL CHECK (column_count >= 0),
  size         BIGINT      NOT NULL CHECK (size >= 0),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_export_records_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_export_records_created_at ON export_records (created_at DESC, id DESC);`,
	},
	{
		Name: "create_index_export_records_format",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_export_records_format ON export_records (format);`,
	},
}

// EnsureMigrated checks if the export_records table exists and runs the
// schema steps if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public." + sentinelTable + "') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
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
