package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"docregistry/internal/catalog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id                TEXT        PRIMARY KEY,
  registration_date TEXT        NOT NULL,
  type              TEXT        NOT NULL CHECK (type IN ('Entrada', 'Salida', 'Interno')),
  doc_number        TEXT        NOT NULL DEFAULT '',
  doc_date          TEXT        NOT NULL DEFAULT '',
  origin            TEXT        NOT NULL DEFAULT '',
  destination       TEXT        NOT NULL DEFAULT '',
  summary           TEXT        NOT NULL DEFAULT '',
  observations      TEXT        NOT NULL DEFAULT '',
  status            TEXT        NOT NULL DEFAULT 'Completado',
  file_name         TEXT,
  attachments       JSONB,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_registration_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_registration_date ON documents (registration_date);`,
	},
	{
		Name: "create_index_documents_doc_number",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_doc_number ON documents (doc_number);`,
	},
	{
		Name: "create_table_departments",
		SQL: `CREATE TABLE IF NOT EXISTS departments (
  name     TEXT    PRIMARY KEY,
  position INTEGER NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_table_external_entities",
		SQL: `CREATE TABLE IF NOT EXISTS external_entities (
  name     TEXT    PRIMARY KEY,
  position INTEGER NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  username TEXT PRIMARY KEY,
  password TEXT NOT NULL,
  role     TEXT NOT NULL,
  name     TEXT NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_counters",
		SQL: `CREATE TABLE IF NOT EXISTS counters (
  id            SMALLINT PRIMARY KEY CHECK (id = 1),
  salida_count  INTEGER  NOT NULL DEFAULT 0,
  interno_count INTEGER  NOT NULL DEFAULT 0,
  year          INTEGER  NOT NULL,
  order_seq     INTEGER  NOT NULL DEFAULT 0
);`,
	},
}

// hashCost is the bcrypt cost for seeded passwords.
var hashCost = bcrypt.DefaultCost

// EnsureMigrated checks if the 'counters' table exists and runs migrations if it doesn't.
// Seeding runs afterwards either way and only touches empty tables.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string, seed catalog.Seed) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.counters') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	} else {
		if err := runSteps(ctx, db, log, start); err != nil {
			return err
		}
	}

	return Seed(ctx, db, log, seed)
}

func runSteps(ctx context.Context, db *sql.DB, log *zap.Logger, start time.Time) error {
	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}

// Seed fills the catalog and user tables from s when they are empty.
func Seed(ctx context.Context, db *sql.DB, log *zap.Logger, s catalog.Seed) error {
	if err := seedNames(ctx, db, log, "departments", s.Departments); err != nil {
		return err
	}
	if err := seedNames(ctx, db, log, "external_entities", s.ExternalEntities); err != nil {
		return err
	}
	return seedUsers(ctx, db, log, s.Users)
}

func seedNames(ctx context.Context, db *sql.DB, log *zap.Logger, table string, names []string) error {
	empty, err := isEmpty(ctx, db, table)
	if err != nil || !empty || len(names) == 0 {
		return err
	}

	q := fmt.Sprintf("INSERT INTO %s (name, position) VALUES ($1, $2)", table)
	err = inTx(ctx, db, func(tx *sql.Tx) error {
		for i, n := range names {
			if _, err := tx.ExecContext(ctx, q, n, i); err != nil {
				return fmt.Errorf("seed %s %q: %w", table, n, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("db_seed", zap.String("table", table), zap.Int("rows", len(names)))
	return nil
}

func seedUsers(ctx context.Context, db *sql.DB, log *zap.Logger, users []catalog.User) error {
	empty, err := isEmpty(ctx, db, "users")
	if err != nil || !empty || len(users) == 0 {
		return err
	}

	hashed := make([]string, len(users))
	for i, u := range users {
		h, err := bcrypt.GenerateFromPassword([]byte(u.Password), hashCost)
		if err != nil {
			return fmt.Errorf("hash password of %s: %w", u.Username, err)
		}
		hashed[i] = string(h)
	}

	const q = "INSERT INTO users (username, password, role, name) VALUES ($1, $2, $3, $4)"
	err = inTx(ctx, db, func(tx *sql.Tx) error {
		for i, u := range users {
			if _, err := tx.ExecContext(ctx, q, u.Username, hashed[i], u.Role, u.Name); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("db_seed", zap.String("table", "users"), zap.Int("rows", len(users)))
	return nil
}

func isEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return n == 0, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
