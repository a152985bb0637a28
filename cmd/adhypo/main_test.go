package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "adhypo/internal/errors"
)

const csvHeader = "campaign_name,adset_name,date,spend,impressions,clicks,ctr,purchases,revenue,roas,creative_type,creative_message,audience_type,platform,country"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitConfigError, exitCode(apperrors.ConfigInvalid("no data path")))
	assert.Equal(t, exitConfigError, exitCode(fmt.Errorf("wrapped: %w", apperrors.ConfigInvalid("x"))))
	assert.Equal(t, exitFailure, exitCode(apperrors.NewSchemaError([]string{"ctr"})))
	assert.Equal(t, exitFailure, exitCode(errors.New("boom")))
}

func TestMissingConfigExitsTwo(t *testing.T) {
	_, err := execute(t, "q", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, exitConfigError, exitCode(err))
}

func TestRunPrintsArtifactPaths(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()

	data := filepath.Join(dir, "ads.csv")
	writeFile(t, data, csvHeader+"\n"+
		"Alpha,A1,2024-05-01,100,5000,50,0.01,2,300,3,Image,Soft cotton,Broad,Facebook,US\n")

	cfgPath := filepath.Join(dir, "config", "config.yaml")
	writeFile(t, cfgPath, strings.Join([]string{
		"data_csv: " + data,
		"insights_path: " + filepath.Join(dir, "reports", "insights.json"),
		"creatives_path: " + filepath.Join(dir, "reports", "creatives.json"),
		"report_path: " + filepath.Join(dir, "reports", "report.md"),
		"logs_path: " + filepath.Join(dir, "logs"),
		"log_level: error",
	}, "\n"))

	out, err := execute(t, "Why is CTR low?", "--config", cfgPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Run complete.", lines[0])
	assert.Equal(t, "- insights: "+filepath.Join(dir, "reports", "insights.json"), lines[1])
	assert.True(t, strings.HasPrefix(lines[4], "- run log: "+filepath.Join(dir, "logs", "run-")))

	_, statErr := os.Stat(filepath.Join(dir, "reports", "report.md"))
	assert.NoError(t, statErr)
}

func TestSchemaErrorExitsOne(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "ads.csv")
	writeFile(t, data, "campaign_name,spend\nAlpha,1\n")

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "data_csv: "+data+"\nlog_level: error\nlogs_path: "+filepath.Join(dir, "logs")+"\n")

	_, err := execute(t, "q", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))
	assert.Contains(t, err.Error(), "Missing columns")
}

func TestQueryIsRequired(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestGenDataFeedsARun(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	data := filepath.Join(dir, "ads.csv")

	out, err := execute(t, "gen-data", "--out", data, "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset written: "+data)
	assert.Contains(t, out, "Rows: 56")

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, strings.Join([]string{
		"data_csv: " + data,
		"insights_path: " + filepath.Join(dir, "insights.json"),
		"creatives_path: " + filepath.Join(dir, "creatives.json"),
		"report_path: " + filepath.Join(dir, "report.md"),
		"logs_path: " + filepath.Join(dir, "logs"),
		"log_level: error",
	}, "\n"))

	_, err = execute(t, "Why did ROAS drop?", "--config", cfgPath)
	require.NoError(t, err)

	report, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "Fresh Fit")
}

func TestGenDataRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "gen-data", "--out", filepath.Join(dir, "x.csv"), "--start", "01/02/2025")
	require.Error(t, err)
	assert.Equal(t, exitConfigError, exitCode(err))

	_, err = execute(t, "gen-data", "--out", filepath.Join(dir, "x.json"), "--format", "json")
	require.Error(t, err)
	assert.Equal(t, exitConfigError, exitCode(err))
}

func TestImportRunsBackfillsLedger(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	data := filepath.Join(dir, "ads.csv")
	writeFile(t, data, csvHeader+"\n"+
		"Alpha,A1,2024-05-01,100,5000,50,0.01,2,300,3,Image,Soft cotton,Broad,Facebook,US\n")

	base := []string{
		"data_csv: " + data,
		"insights_path: " + filepath.Join(dir, "insights.json"),
		"creatives_path: " + filepath.Join(dir, "creatives.json"),
		"report_path: " + filepath.Join(dir, "report.md"),
		"logs_path: " + filepath.Join(dir, "logs"),
		"log_level: error",
	}
	plain := filepath.Join(dir, "plain.yaml")
	writeFile(t, plain, strings.Join(base, "\n"))

	_, err := execute(t, "q", "--config", plain)
	require.NoError(t, err)

	_, err = execute(t, "import-runs", "--config", plain)
	require.Error(t, err)
	assert.Equal(t, exitConfigError, exitCode(err))

	withLedger := filepath.Join(dir, "ledger.yaml")
	writeFile(t, withLedger, strings.Join(append(base,
		"ledger:",
		"  driver: sqlite",
		"  dsn: "+filepath.Join(dir, "ledger.db"),
	), "\n"))

	out, err := execute(t, "import-runs", "--config", withLedger)
	require.NoError(t, err)
	assert.Equal(t, "Import complete: 1 imported, 0 skipped\n", out)
}
