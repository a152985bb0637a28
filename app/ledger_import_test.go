package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImportBackfillsRunLogs(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir, false)
	svc := newTestRunService(csvLoader(writeFixture(t)), paths, nil, nil)

	outcome, err := svc.Execute(context.Background(), "Why did ROAS drop?")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(paths.Logs, "broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(paths.Logs, "empty.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(paths.Logs, "notes.txt"), []byte("ignored"), 0o644))

	ledger := &recordingLedger{}
	stats, err := NewLedgerImporter(ledger, zap.NewNop()).Import(context.Background(), paths.Logs)
	require.NoError(t, err)

	assert.Equal(t, ImportStats{Imported: 1, Skipped: 2}, stats)
	require.Len(t, ledger.stored, 1)
	assert.Equal(t, outcome.Result.RunID, ledger.stored[0].RunID)
	assert.Equal(t, outcome.Result.Insights, ledger.stored[0].Insights)
}

func TestImportStopsOnLedgerFailure(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir, false)
	svc := newTestRunService(csvLoader(writeFixture(t)), paths, nil, nil)
	_, err := svc.Execute(context.Background(), "q")
	require.NoError(t, err)

	ledger := &recordingLedger{err: errors.New("ledger down")}
	stats, err := NewLedgerImporter(ledger, zap.NewNop()).Import(context.Background(), paths.Logs)
	assert.EqualError(t, err, "ledger down")
	assert.Zero(t, stats.Imported)
}

func TestImportMissingDir(t *testing.T) {
	_, err := NewLedgerImporter(&recordingLedger{}, zap.NewNop()).Import(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
