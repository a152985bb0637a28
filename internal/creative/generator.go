package creative

import (
	"fmt"

	"go.uber.org/zap"

	"adhypo/domain/campaign"
	"adhypo/domain/core"
	"adhypo/domain/creative"
)

// sampleSize is how many existing messages accompany each recommendation set.
const sampleSize = 3

// Generator proposes templated creative variants for low-CTR campaigns
type Generator struct {
	ids    core.IDGenerator
	logger *zap.Logger
}

// NewGenerator creates a creative generator drawing variant ids from ids
func NewGenerator(ids core.IDGenerator, logger *zap.Logger) *Generator {
	return &Generator{ids: ids, logger: logger.Named("creatives")}
}

// Generate returns one entry per low-CTR campaign, in summary order, each
// with one variant of every kind.
func (g *Generator) Generate(summary *campaign.Summary) []creative.CampaignCreatives {
	sample := summary.TopMessageLabels(sampleSize)

	out := make([]creative.CampaignCreatives, 0, len(summary.LowCTRCampaigns))
	for _, c := range summary.LowCTRCampaigns {
		out = append(out, creative.CampaignCreatives{
			Campaign:                  c.CampaignName,
			LowCTR:                    c.CTR,
			Recommendations:           g.variants(c.CampaignName),
			TopExistingMessagesSample: sample,
		})
	}

	g.logger.Info("creatives generated", zap.Int("campaigns", len(out)))
	return out
}

func (g *Generator) variants(name string) []creative.Variant {
	out := make([]creative.Variant, 0, len(creative.Kinds))
	for _, kind := range creative.Kinds {
		tpl := templates[kind]
		out = append(out, creative.Variant{
			ID:          core.VariantID(g.ids.NextID()),
			Headline:    fmt.Sprintf(tpl.Headline, name),
			Body:        tpl.Body,
			CTA:         tpl.CTA,
			Rationale:   tpl.Rationale,
			VariantType: kind,
			SeedNote:    "",
		})
	}
	return out
}
