package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"adhypo/domain/core"
	"adhypo/domain/run"
	"adhypo/internal/errors"
	"adhypo/ports"
)

// DefaultListLimit bounds ListRuns when no positive limit is given
const DefaultListLimit = 50

// runRepository implements the LedgerPort interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run ledger repository
func NewRunRepository(db *sqlx.DB) ports.LedgerPort {
	return &runRepository{db: db}
}

// StoreRun inserts a run, replacing any earlier row with the same id
func (r *runRepository) StoreRun(ctx context.Context, result *run.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run result: %w", err)
	}

	row := map[string]any{
		"run_id":           result.RunID.String(),
		"query":            result.Query,
		"started_at":       result.Meta.StartedAt,
		"hypothesis_count": len(result.Insights.Hypotheses),
		"accepted_count":   result.AcceptedCount(),
		"low_ctr_count":    len(result.DataSummary.LowCTRCampaigns),
		"fingerprint":      result.Meta.Fingerprint.Fingerprint.String(),
		"result":           string(resultJSON),
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO runs (
			run_id, query, started_at, hypothesis_count, accepted_count,
			low_ctr_count, fingerprint, result
		) VALUES (
			:run_id, :query, :started_at, :hypothesis_count, :accepted_count,
			:low_ctr_count, :fingerprint, :result
		)
		ON CONFLICT (run_id) DO UPDATE SET
			query = excluded.query,
			started_at = excluded.started_at,
			hypothesis_count = excluded.hypothesis_count,
			accepted_count = excluded.accepted_count,
			low_ctr_count = excluded.low_ctr_count,
			fingerprint = excluded.fingerprint,
			result = excluded.result
	`, row)
	if err != nil {
		return errors.DatabaseError("failed to store run", err)
	}
	return nil
}

// ListRuns returns the most recent runs first
func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	runs := []ports.RunSummary{}
	err := r.db.SelectContext(ctx, &runs, r.db.Rebind(`
		SELECT run_id, query, started_at, hypothesis_count, accepted_count,
		       low_ctr_count, fingerprint
		FROM runs
		ORDER BY started_at DESC, run_id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list runs", err)
	}
	return runs, nil
}

// GetRun loads the full result recorded for runID
func (r *runRepository) GetRun(ctx context.Context, runID core.RunID) (*run.Result, error) {
	var resultJSON string
	err := r.db.GetContext(ctx, &resultJSON, r.db.Rebind(`SELECT result FROM runs WHERE run_id = ?`), runID.String())
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, runID)
		}
		return nil, errors.DatabaseError("failed to get run", err)
	}

	var result run.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", runID, err)
	}
	return &result, nil
}
