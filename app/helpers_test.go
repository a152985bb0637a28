package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adhypo/adapters/excel"
	"adhypo/adapters/heuristic"
	"adhypo/domain/campaign"
	"adhypo/domain/core"
	"adhypo/domain/run"
	"adhypo/internal/analysis"
	"adhypo/internal/creative"
	"adhypo/internal/referee"
	"adhypo/ports"
)

const csvHeader = "campaign_name,adset_name,date,spend,impressions,clicks,ctr,purchases,revenue,roas,creative_type,creative_message,audience_type,platform,country"

// Alpha is low CTR, Beta is low ROAS, Gamma is healthy. Median CTR is 0.03.
var fixtureRows = []string{
	"Alpha,A1,2024-05-01,60,3000,30,0.01,2,180,3,Image,Soft cotton,Broad,Facebook,US",
	"Alpha,A2,2024-05-02,40,2000,20,0.01,1,120,3,Image,Soft cotton,Broad,Facebook,US",
	"Beta,B1,2024-05-01,200,4000,120,0.03,1,60,0.3,Video,Bold colours,Lookalike,Instagram,UK",
	"Gamma,G1,2024-05-03,100,3000,90,0.03,4,250,2.5,Carousel,New season,Retarget,Facebook,US",
}

var fixedTime = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ads.csv")
	content := csvHeader + "\n" + strings.Join(fixtureRows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestAnalysis(loader ports.DatasetLoaderPort, seed int64) *AnalysisService {
	logger := zap.NewNop()
	ids := core.NewSeededIDGenerator(seed)
	th := analysis.DefaultThresholds()

	return NewAnalysisService(AnalysisComponents{
		Loader:     loader,
		Summarizer: analysis.NewAggregator(th, logger),
		Generator:  heuristic.NewGenerator(ids, logger),
		Evaluator:  referee.NewEvaluator(th.MinImpressions, logger),
		Creatives:  creative.NewGenerator(ids, logger),
	}, run.NewRunFingerprint(loader.Source(), th.LowCTRThreshold, th.MinImpressions, seed, CodeVersion), fixedClock, logger)
}

func csvLoader(path string) ports.DatasetLoaderPort {
	return excel.NewCampaignLoader(excel.DefaultExcelConfig(path), zap.NewNop())
}

// stubLoader returns canned rows or an error
type stubLoader struct {
	rows  []campaign.Row
	err   error
	calls int
}

func (s *stubLoader) Load(ctx context.Context) ([]campaign.Row, error) {
	s.calls++
	return s.rows, s.err
}

func (s *stubLoader) Source() string { return "stub" }
