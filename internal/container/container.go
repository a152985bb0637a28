package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"adhypo/adapters/api"
	"adhypo/adapters/datareadiness/coercer"
	"adhypo/adapters/excel"
	"adhypo/adapters/heuristic"
	"adhypo/adapters/sqlstore"
	"adhypo/app"
	"adhypo/domain/core"
	"adhypo/domain/run"
	"adhypo/internal/analysis"
	"adhypo/internal/artifacts"
	"adhypo/internal/config"
	"adhypo/internal/creative"
	"adhypo/internal/metrics"
	"adhypo/internal/referee"
	"adhypo/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  core.Clock

	// Infrastructure
	DB      *sqlx.DB
	Ledger  ports.LedgerPort
	Metrics *metrics.Recorder
	Storage *artifacts.LocalFileStorage

	// Services
	RunService *app.RunService
}

// New creates a new dependency injection container. The ledger is opened
// only when configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Clock:   core.SystemClock,
		Metrics: metrics.NewRecorder(),
		Storage: artifacts.NewLocalFileStorage(nil),
	}

	if cfg.Ledger.Enabled() {
		if err := c.initLedger(ctx); err != nil {
			return nil, err
		}
	}

	c.initServices()
	logger.Debug("container initialized", zap.Bool("ledger", c.Ledger != nil))
	return c, nil
}

// initLedger connects the run ledger
func (c *Container) initLedger(ctx context.Context) error {
	db, err := sqlstore.Open(ctx, c.Config.Ledger, c.Logger)
	if err != nil {
		return err
	}
	c.DB = db
	c.Ledger = sqlstore.NewRunRepository(db)
	return nil
}

// initServices wires the run service
func (c *Container) initServices() {
	var ledger ports.LedgerWriterPort
	if c.Ledger != nil {
		ledger = c.Ledger
	}

	c.RunService = app.NewRunService(
		c.NewAnalysisService,
		c.Storage,
		app.OutputPaths{
			Insights:   c.Config.InsightsPath,
			Creatives:  c.Config.CreativesPath,
			Report:     c.Config.ReportPath,
			ReportHTML: c.Config.ReportHTMLPath,
			Logs:       c.Config.LogsPath,
		},
		ledger,
		c.Metrics,
		c.Logger,
	)
}

// NewAnalysisService builds a pipeline with a fresh seeded id generator, so
// every run with the same seed and data yields the same identifiers
func (c *Container) NewAnalysisService() *app.AnalysisService {
	cfg := c.Config
	ids := core.NewSeededIDGenerator(cfg.RandomSeed)
	thresholds := analysis.Thresholds{
		LowCTRThreshold: cfg.LowCTRThreshold,
		MinImpressions:  cfg.MinImpressions,
	}

	source := excel.DefaultExcelConfig(cfg.DataCSV)
	if cfg.LenientNumbers {
		source.CoercionConfig = coercer.LenientCoercionConfig()
	}
	loader := excel.NewCampaignLoader(source, c.Logger)
	fingerprint := run.NewRunFingerprint(loader.Source(), cfg.LowCTRThreshold, cfg.MinImpressions, cfg.RandomSeed, app.CodeVersion)

	return app.NewAnalysisService(app.AnalysisComponents{
		Loader:     loader,
		Summarizer: analysis.NewAggregator(thresholds, c.Logger),
		Generator:  heuristic.NewGenerator(ids, c.Logger),
		Evaluator:  referee.NewEvaluator(cfg.MinImpressions, c.Logger),
		Creatives:  creative.NewGenerator(ids, c.Logger),
	}, fingerprint, c.Clock, c.Logger)
}

// APIServer builds the HTTP surface over the run service
func (c *Container) APIServer() *api.Server {
	var reader ports.LedgerReaderPort
	if c.Ledger != nil {
		reader = c.Ledger
	}
	return api.NewServer(c.RunService, reader, c.Metrics.Handler(), c.Logger)
}

// Close releases the ledger connection
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
