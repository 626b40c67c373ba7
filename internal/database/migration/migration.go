package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobboard/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created by the last table step; its presence means the schema exists.
const sentinelTable = "public.applications"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL CHECK (role IN ('applicant', 'employer', 'admin')),
  profile       JSONB       NOT NULL DEFAULT '{}'::jsonb,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_jobs",
		SQL: `CREATE TABLE IF NOT EXISTS jobs (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title           TEXT        NOT NULL,
  description     TEXT        NOT NULL,
  company         TEXT        NOT NULL,
  location        TEXT        NOT NULL,
  job_type        TEXT        NOT NULL DEFAULT 'full-time',
  salary_min      BIGINT      CHECK (salary_min >= 0),
  salary_max      BIGINT      CHECK (salary_max >= 0),
  salary_currency TEXT        NOT NULL DEFAULT 'USD',
  skills          JSONB       NOT NULL DEFAULT '[]'::jsonb,
  requirements    JSONB       NOT NULL DEFAULT '[]'::jsonb,
  benefits        JSONB       NOT NULL DEFAULT '[]'::jsonb,
  status          TEXT        NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'closed')),
  employer_id     UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  job_id          UUID        NOT NULL REFERENCES jobs (id) ON DELETE CASCADE,
  applicant_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  status          TEXT        NOT NULL DEFAULT 'applied'
                  CHECK (status IN ('applied', 'shortlisted', 'rejected', 'hired')),
  cover_letter    TEXT        NOT NULL DEFAULT '',
  notes           TEXT        NOT NULL DEFAULT '',
  resume          TEXT        NOT NULL DEFAULT '',
  resume_filename TEXT        NOT NULL DEFAULT '',
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (job_id, applicant_id)
);`,
	},
	{
		Name: "create_index_jobs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs (created_at);`,
	},
	{
		Name: "create_index_jobs_employer_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_jobs_employer_id ON jobs (employer_id);`,
	},
	{
		Name: "create_index_jobs_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status);`,
	},
	{
		Name: "create_index_applications_job_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications (job_id);`,
	},
	{
		Name: "create_index_applications_applicant_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_applicant_id ON applications (applicant_id);`,
	},
}

// EnsureMigrated checks if the schema exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()

	log.Log(logging.Fields{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Log(logging.Fields{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Log(logging.Fields{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Log(logging.Fields{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Log(logging.Fields{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Log(logging.Fields{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	log.Log(logging.Fields{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
