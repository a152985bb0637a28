package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adhypo/domain/hypothesis"
	"adhypo/domain/run"
	"adhypo/internal/artifacts"
	"adhypo/internal/metrics"
	"adhypo/ports"
)

// recordingLedger captures stored runs
type recordingLedger struct {
	stored []*run.Result
	err    error
}

func (l *recordingLedger) StoreRun(ctx context.Context, result *run.Result) error {
	if l.err != nil {
		return l.err
	}
	l.stored = append(l.stored, result)
	return nil
}

func testPaths(dir string, html bool) OutputPaths {
	p := OutputPaths{
		Insights:  filepath.Join(dir, "reports", "insights.json"),
		Creatives: filepath.Join(dir, "reports", "creatives.json"),
		Report:    filepath.Join(dir, "reports", "report.md"),
		Logs:      filepath.Join(dir, "logs"),
	}
	if html {
		p.ReportHTML = filepath.Join(dir, "reports", "report.html")
	}
	return p
}

func newTestRunService(loader ports.DatasetLoaderPort, paths OutputPaths, ledger ports.LedgerWriterPort, recorder *metrics.Recorder) *RunService {
	return NewRunService(
		func() *AnalysisService { return newTestAnalysis(loader, 42) },
		artifacts.NewLocalFileStorage(nil),
		paths,
		ledger,
		recorder,
		zap.NewNop(),
	)
}

func scrape(t *testing.T, recorder *metrics.Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestExecuteWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	ledger := &recordingLedger{}
	recorder := metrics.NewRecorder()
	svc := newTestRunService(csvLoader(writeFixture(t)), testPaths(dir, true), ledger, recorder)

	outcome, err := svc.Execute(context.Background(), "Why did ROAS drop?")
	require.NoError(t, err)

	w := outcome.Written
	assert.Equal(t, filepath.Join(dir, "logs", "run-20240501T123000Z.json"), w.RunLog)
	for _, p := range []string{w.Insights, w.Creatives, w.Report, w.ReportHTML, w.RunLog} {
		_, statErr := os.Stat(p)
		assert.NoError(t, statErr, p)
	}

	data, err := os.ReadFile(w.Insights)
	require.NoError(t, err)
	var insights hypothesis.Insights
	require.NoError(t, json.Unmarshal(data, &insights))
	assert.Len(t, insights.Hypotheses, 2)

	reportText, err := os.ReadFile(w.Report)
	require.NoError(t, err)
	assert.Equal(t, outcome.Result.Report, string(reportText))

	logData, err := os.ReadFile(w.RunLog)
	require.NoError(t, err)
	var logged run.Result
	require.NoError(t, json.Unmarshal(logData, &logged))
	assert.Equal(t, outcome.Result.RunID, logged.RunID)
	assert.Equal(t, outcome.Result.Insights, logged.Insights)

	require.Len(t, ledger.stored, 1)
	assert.Equal(t, outcome.Result.RunID, ledger.stored[0].RunID)

	body := scrape(t, recorder)
	assert.Contains(t, body, `adhypo_runs_total{status="success"} 1`)
	assert.Contains(t, body, `adhypo_hypotheses_total{verdict="accept"} 2`)
}

func TestExecuteWithoutOptionalOutputs(t *testing.T) {
	dir := t.TempDir()
	svc := newTestRunService(csvLoader(writeFixture(t)), testPaths(dir, false), nil, nil)

	outcome, err := svc.Execute(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, outcome.Written.ReportHTML)

	_, statErr := os.Stat(filepath.Join(dir, "reports", "report.html"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExecuteFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	recorder := metrics.NewRecorder()
	loader := &stubLoader{err: errors.New("boom")}
	svc := newTestRunService(loader, testPaths(dir, false), &recordingLedger{}, recorder)

	_, err := svc.Execute(context.Background(), "q")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "reports"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Contains(t, scrape(t, recorder), `adhypo_runs_total{status="failure"} 1`)
}

func TestExecuteLedgerFailure(t *testing.T) {
	ledger := &recordingLedger{err: errors.New("db down")}
	svc := newTestRunService(csvLoader(writeFixture(t)), testPaths(t.TempDir(), false), ledger, nil)

	_, err := svc.Execute(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
