package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"adhypo/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the run ledger schema. Statements are portable
// between postgres and sqlite and safe to repeat.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create runs table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			run_id           TEXT PRIMARY KEY,
			query            TEXT NOT NULL,
			started_at       TEXT NOT NULL,
			hypothesis_count INTEGER NOT NULL DEFAULT 0,
			accepted_count   INTEGER NOT NULL DEFAULT 0,
			low_ctr_count    INTEGER NOT NULL DEFAULT 0,
			fingerprint      TEXT NOT NULL DEFAULT '',
			result           TEXT NOT NULL
		)`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at)`)
	return err
}
