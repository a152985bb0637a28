package adforensics

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adhypo/adapters/excel"
	"adhypo/domain/campaign"
	"adhypo/internal/analysis"
)

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(DefaultConfig())
	require.NoError(t, err)
	b, err := Generate(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := DefaultConfig()
	other.Seed = 7
	c, err := Generate(other)
	require.NoError(t, err)
	assert.NotEqual(t, a.Rows, c.Rows)
}

func TestGenerateShape(t *testing.T) {
	cfg := DefaultConfig()
	ds, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, campaign.RequiredColumns, ds.Headers)
	assert.Len(t, ds.Rows, cfg.Days*len(cfg.Profiles)*cfg.AdsetsPerCampaign)
	for _, row := range ds.Rows {
		assert.Len(t, row, len(ds.Headers))
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no days", func(c *Config) { c.Days = 0 }},
		{"no adsets", func(c *Config) { c.AdsetsPerCampaign = 0 }},
		{"no profiles", func(c *Config) { c.Profiles = nil }},
		{"negative noise", func(c *Config) { c.Noise = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := Generate(cfg)
			assert.Error(t, err)
		})
	}
}

func summarize(t *testing.T, path string) *campaign.Summary {
	t.Helper()
	rows, err := excel.NewCampaignLoader(excel.DefaultExcelConfig(path), zap.NewNop()).Load(context.Background())
	require.NoError(t, err)
	return analysis.NewAggregator(analysis.DefaultThresholds(), zap.NewNop()).Summarize(rows)
}

func TestPlantedSignalsSurviveLoading(t *testing.T) {
	ds, err := Generate(DefaultConfig())
	require.NoError(t, err)

	dir := t.TempDir()
	for _, path := range []string{filepath.Join(dir, "ads.csv"), filepath.Join(dir, "ads.xlsx")} {
		if filepath.Ext(path) == ".csv" {
			require.NoError(t, WriteCSV(path, ds))
		} else {
			require.NoError(t, WriteXLSX(path, ds))
		}

		summary := summarize(t, path)
		assert.Equal(t, len(ds.Rows), summary.Meta.NRows, path)
		assert.Equal(t, 4, summary.Meta.NCampaigns, path)

		require.Len(t, summary.LowCTRCampaigns, 1, path)
		assert.Equal(t, "Fresh Fit", summary.LowCTRCampaigns[0].CampaignName)

		var lowROAS []string
		for _, c := range summary.Campaigns {
			if c.ROAS < 0.5 {
				lowROAS = append(lowROAS, c.CampaignName)
			}
		}
		assert.Equal(t, []string{"Summer Sale"}, lowROAS, path)
	}
}
