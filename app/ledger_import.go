package app

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"adhypo/domain/run"
	apperrors "adhypo/internal/errors"
	"adhypo/ports"
)

// ImportStats counts the outcome of a run log import
type ImportStats struct {
	Imported int
	Skipped  int
}

// LedgerImporter backfills the ledger from run logs written while no ledger
// was configured
type LedgerImporter struct {
	ledger ports.LedgerWriterPort
	logger *zap.Logger
}

// NewLedgerImporter creates an importer writing to ledger
func NewLedgerImporter(ledger ports.LedgerWriterPort, logger *zap.Logger) *LedgerImporter {
	return &LedgerImporter{ledger: ledger, logger: logger.Named("ledger_import")}
}

// Import stores every run log under dir. Unreadable files are skipped and
// counted; storing the same run twice overwrites it.
func (i *LedgerImporter) Import(ctx context.Context, dir string) (ImportStats, error) {
	var stats ImportStats

	files, err := findRunLogs(dir)
	if err != nil {
		return stats, err
	}
	i.logger.Info("importing run logs", zap.String("dir", dir), zap.Int("files", len(files)))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		result, err := loadRunLog(file)
		if err != nil {
			i.logger.Warn("skipping run log", zap.String("file", file), zap.Error(err))
			stats.Skipped++
			continue
		}

		if err := i.ledger.StoreRun(ctx, result); err != nil {
			return stats, err
		}
		stats.Imported++
		i.logger.Debug("imported run", zap.String("run_id", result.RunID.String()))
	}

	i.logger.Info("import complete", zap.Int("imported", stats.Imported), zap.Int("skipped", stats.Skipped))
	return stats, nil
}

func findRunLogs(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	return files, err
}

func loadRunLog(path string) (*run.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result run.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	if result.RunID == "" {
		return nil, apperrors.InvalidInput("run log has no run_id")
	}
	return &result, nil
}
