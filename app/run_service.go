package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"adhypo/domain/run"
	"adhypo/internal/artifacts"
	apperrors "adhypo/internal/errors"
	"adhypo/internal/metrics"
	"adhypo/internal/report"
	"adhypo/ports"
)

// OutputPaths are where a run's artifacts are written. An empty ReportHTML
// skips the HTML rendering.
type OutputPaths struct {
	Insights   string
	Creatives  string
	Report     string
	ReportHTML string
	Logs       string
}

// Written lists the files produced by one run
type Written struct {
	Insights   string `json:"insights"`
	Creatives  string `json:"creatives"`
	Report     string `json:"report"`
	ReportHTML string `json:"report_html,omitempty"`
	RunLog     string `json:"run_log"`
}

// RunOutcome is a completed run together with its artifact locations
type RunOutcome struct {
	Result  *run.Result `json:"result"`
	Written Written     `json:"written"`
}

// AnalysisFactory builds a fresh analysis service for each run
type AnalysisFactory func() *AnalysisService

// RunService executes queries and publishes their artifacts
type RunService struct {
	newAnalysis AnalysisFactory
	storage     *artifacts.LocalFileStorage
	paths       OutputPaths
	ledger      ports.LedgerWriterPort
	metrics     *metrics.Recorder
	logger      *zap.Logger
}

// NewRunService creates a run service. ledger and recorder may be nil.
func NewRunService(newAnalysis AnalysisFactory, storage *artifacts.LocalFileStorage, paths OutputPaths, ledger ports.LedgerWriterPort, recorder *metrics.Recorder, logger *zap.Logger) *RunService {
	return &RunService{
		newAnalysis: newAnalysis,
		storage:     storage,
		paths:       paths,
		ledger:      ledger,
		metrics:     recorder,
		logger:      logger.Named("runs"),
	}
}

// Execute runs query, writes every artifact and records the run in the
// ledger when one is configured
func (s *RunService) Execute(ctx context.Context, query string) (*RunOutcome, error) {
	start := time.Now()

	result, err := s.newAnalysis().Run(ctx, query)
	if err != nil {
		s.fail(start, err)
		return nil, err
	}

	written, err := s.publish(ctx, result)
	if err != nil {
		s.fail(start, err)
		return nil, err
	}

	s.observe(metrics.StatusSuccess, start, result)
	s.logger.Info("run published",
		zap.String("run_id", result.RunID.String()),
		zap.String("run_log", written.RunLog))
	return &RunOutcome{Result: result, Written: written}, nil
}

func (s *RunService) publish(ctx context.Context, result *run.Result) (Written, error) {
	written := Written{
		Insights:  s.paths.Insights,
		Creatives: s.paths.Creatives,
		Report:    s.paths.Report,
		RunLog:    filepath.Join(s.paths.Logs, result.RunID.String()+".json"),
	}

	if err := s.storage.EnsureDir(s.paths.Logs); err != nil {
		return Written{}, err
	}
	if err := s.storage.WriteJSON(written.Insights, result.Insights); err != nil {
		return Written{}, err
	}
	if err := s.storage.WriteJSON(written.Creatives, result.Creatives); err != nil {
		return Written{}, err
	}
	if err := s.storage.WriteText(written.Report, result.Report); err != nil {
		return Written{}, err
	}
	if s.paths.ReportHTML != "" {
		if err := s.storage.WriteBytes(s.paths.ReportHTML, report.RenderHTML(result.Report)); err != nil {
			return Written{}, err
		}
		written.ReportHTML = s.paths.ReportHTML
	}
	if err := s.storage.WriteJSON(written.RunLog, result); err != nil {
		return Written{}, err
	}

	if s.ledger != nil {
		if err := s.ledger.StoreRun(ctx, result); err != nil {
			return Written{}, fmt.Errorf("record run %s: %w", result.RunID, err)
		}
	}
	return written, nil
}

func (s *RunService) fail(start time.Time, err error) {
	s.logger.Error("run failed", zap.String("code", apperrors.GetCode(err)), zap.Error(err))
	s.observe(metrics.StatusFailure, start, nil)
}

func (s *RunService) observe(status string, start time.Time, result *run.Result) {
	if s.metrics == nil {
		return
	}
	if result == nil {
		s.metrics.ObserveRun(status, time.Since(start), nil, 0)
		return
	}
	s.metrics.ObserveRun(status, time.Since(start), result.Insights.Hypotheses, len(result.DataSummary.LowCTRCampaigns))
}
