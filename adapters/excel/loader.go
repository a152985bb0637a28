package excel

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"adhypo/adapters/datareadiness/coercer"
	"adhypo/domain/campaign"
	apperrors "adhypo/internal/errors"
)

// CampaignLoader reads a campaign performance table and coerces it into rows.
type CampaignLoader struct {
	config  ExcelConfig
	reader  *DataReader
	coercer *coercer.TypeCoercer
	logger  *zap.Logger
}

// NewCampaignLoader creates a loader for the configured file
func NewCampaignLoader(config ExcelConfig, logger *zap.Logger) *CampaignLoader {
	return &CampaignLoader{
		config:  config,
		reader:  NewDataReader(config.FilePath, config.SheetName, logger),
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		logger:  logger.Named("loader"),
	}
}

// Source returns the path the loader reads from
func (l *CampaignLoader) Source() string {
	return l.config.FilePath
}

// Load reads, validates and coerces the dataset. A missing required column
// fails with *errors.SchemaError; bad cell values never fail.
func (l *CampaignLoader) Load(ctx context.Context) ([]campaign.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.reader.ReadData()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if err := ValidateColumns(data); err != nil {
		l.logger.Error("dataset schema invalid", zap.Error(err))
		return nil, err
	}

	rows := make([]campaign.Row, 0, len(data.Rows))
	for _, raw := range data.Rows {
		rows = append(rows, l.coerceRow(raw))
	}

	l.logger.Info("dataset loaded", zap.String("path", l.config.FilePath), zap.Int("rows", len(rows)))
	return rows, nil
}

// ValidateColumns checks that every required column is present in the header row.
func ValidateColumns(data *ExcelData) error {
	var missing []string
	for _, col := range campaign.RequiredColumns {
		if !data.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError(missing)
	}
	return nil
}

func (l *CampaignLoader) coerceRow(raw RawRowData) campaign.Row {
	c := l.coercer
	return campaign.Row{
		CampaignName:    raw["campaign_name"],
		AdsetName:       raw["adset_name"],
		Date:            c.Date(raw["date"]),
		Spend:           c.Float(raw["spend"]),
		Impressions:     c.Int(raw["impressions"]),
		Clicks:          c.Int(raw["clicks"]),
		CTR:             c.Float(raw["ctr"]),
		Purchases:       c.Int(raw["purchases"]),
		Revenue:         c.Float(raw["revenue"]),
		ROAS:            c.Float(raw["roas"]),
		CreativeType:    raw["creative_type"],
		CreativeMessage: raw["creative_message"],
		AudienceType:    raw["audience_type"],
		Platform:        raw["platform"],
		Country:         raw["country"],
	}
}
