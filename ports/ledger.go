package ports

import (
	"context"

	"adhypo/domain/core"
	"adhypo/domain/run"
)

// LedgerWriterPort records completed runs
type LedgerWriterPort interface {
	StoreRun(ctx context.Context, result *run.Result) error
}

// LedgerReaderPort provides read-only access to recorded runs
type LedgerReaderPort interface {
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	GetRun(ctx context.Context, runID core.RunID) (*run.Result, error)
}

// LedgerPort combines read and write access
type LedgerPort interface {
	LedgerWriterPort
	LedgerReaderPort
}

// RunSummary is the list view of a recorded run
type RunSummary struct {
	RunID              core.RunID `json:"run_id" db:"run_id"`
	Query              string     `json:"query" db:"query"`
	StartedAt          string     `json:"started_at" db:"started_at"`
	HypothesisCount    int        `json:"hypothesis_count" db:"hypothesis_count"`
	AcceptedCount      int        `json:"accepted_count" db:"accepted_count"`
	LowCTRCount        int        `json:"low_ctr_count" db:"low_ctr_count"`
	DatasetFingerprint core.Hash  `json:"dataset_fingerprint" db:"fingerprint"`
}
