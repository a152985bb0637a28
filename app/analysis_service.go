package app

import (
	"context"

	"go.uber.org/zap"

	"adhypo/domain/campaign"
	"adhypo/domain/core"
	"adhypo/domain/creative"
	"adhypo/domain/hypothesis"
	"adhypo/domain/run"
	"adhypo/internal/report"
	"adhypo/ports"
)

// CodeVersion is recorded in every run fingerprint
const CodeVersion = "1.0.0"

// AnalysisComponents are the pipeline stages an AnalysisService drives
type AnalysisComponents struct {
	Loader     ports.DatasetLoaderPort
	Summarizer ports.SummarizerPort
	Generator  ports.GeneratorPort
	Evaluator  ports.EvaluatorPort
	Creatives  ports.CreativePort
}

// AnalysisService runs one query end to end and assembles the combined result
type AnalysisService struct {
	components  AnalysisComponents
	planner     *Planner
	stages      *StageRunner
	fingerprint run.RunFingerprint
	clock       core.Clock
	logger      *zap.Logger
}

// NewAnalysisService creates an analysis service. Components carrying
// identifier generators should be fresh per service so seeded runs repeat.
func NewAnalysisService(components AnalysisComponents, fingerprint run.RunFingerprint, clock core.Clock, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		components:  components,
		planner:     NewPlanner(),
		stages:      NewStageRunner(logger),
		fingerprint: fingerprint,
		clock:       clock,
		logger:      logger.Named("analysis"),
	}
}

// Run executes plan, load, summarize, hypothesize, validate, creatives and
// report in that order. Any failing stage aborts the run.
func (s *AnalysisService) Run(ctx context.Context, query string) (*run.Result, error) {
	started := s.clock()
	runID := core.NewRunID(started)
	logger := s.logger.With(zap.String("run_id", runID.String()))
	logger.Info("run started", zap.String("query", query), zap.String("source", s.components.Loader.Source()))

	plan := s.planner.Decompose(query)

	var (
		rows       []campaign.Row
		summary    *campaign.Summary
		hypotheses []hypothesis.Hypothesis
		validated  []hypothesis.Validated
		creatives  []creative.CampaignCreatives
	)

	stages := []struct {
		task string
		fn   func(ctx context.Context) error
	}{
		{TaskLoadData, func(ctx context.Context) error {
			var err error
			rows, err = s.components.Loader.Load(ctx)
			return err
		}},
		{TaskSummarizeMetrics, func(context.Context) error {
			summary = s.components.Summarizer.Summarize(rows)
			return nil
		}},
		{TaskGenerateHypotheses, func(context.Context) error {
			hypotheses = s.components.Generator.GenerateHypotheses(summary, query)
			return nil
		}},
		{TaskValidateHypotheses, func(context.Context) error {
			validated = s.components.Evaluator.Validate(hypotheses, summary)
			return nil
		}},
		{TaskGenerateCreatives, func(context.Context) error {
			creatives = s.components.Creatives.Generate(summary)
			return nil
		}},
	}

	for _, st := range stages {
		if err := s.stages.Run(ctx, st.task, st.fn); err != nil {
			logger.Error("run aborted", zap.Error(err))
			return nil, err
		}
	}

	text := report.Build(report.Input{
		RunID:           runID,
		Query:           query,
		Generated:       len(hypotheses),
		Validated:       validated,
		LowCTRCampaigns: len(summary.LowCTRCampaigns),
		Creatives:       creatives,
	})

	result := &run.Result{
		RunID:       runID,
		Query:       query,
		GeneratedAt: core.ISOTimestamp(s.clock()),
		Plan:        plan,
		Insights:    hypothesis.Insights{Hypotheses: validated},
		Creatives:   creatives,
		Report:      text,
		DataSummary: *summary,
		Meta: run.Meta{
			StartedAt:   core.ISOTimestamp(started),
			Fingerprint: s.fingerprint,
		},
	}

	logger.Info("run finished",
		zap.Int("hypotheses", len(validated)),
		zap.Int("accepted", result.AcceptedCount()),
		zap.Int("low_ctr_campaigns", len(summary.LowCTRCampaigns)))
	return result, nil
}
