package heuristic

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"adhypo/domain/campaign"
	"adhypo/domain/core"
	"adhypo/domain/hypothesis"
)

// Rule constants
const (
	lowCTRBaseConfidence = 0.5
	lowCTRMaxConfidence  = 0.95

	lowROASCutoff     = 0.5
	lowROASConfidence = 0.45

	fallbackConfidence = 0.4
)

// Generator creates hypotheses using fixed rules over a data summary
type Generator struct {
	ids    core.IDGenerator
	logger *zap.Logger
}

// NewGenerator creates a new heuristic hypothesis generator
func NewGenerator(ids core.IDGenerator, logger *zap.Logger) *Generator {
	return &Generator{ids: ids, logger: logger.Named("hypotheses")}
}

// GenerateHypotheses applies the low-CTR rule, then the low-ROAS rule, and
// falls back to a single generic hypothesis when neither fires. The query is
// recorded for context only.
func (g *Generator) GenerateHypotheses(summary *campaign.Summary, query string) []hypothesis.Hypothesis {
	medianCTR := summary.Meta.MedianCTR
	var out []hypothesis.Hypothesis

	for _, c := range summary.LowCTRCampaigns {
		out = append(out, g.lowCTRHypothesis(c, medianCTR))
	}

	for _, c := range summary.Campaigns {
		if c.ROAS < lowROASCutoff {
			out = append(out, g.lowROASHypothesis(c))
		}
	}

	if len(out) == 0 {
		out = append(out, hypothesis.Hypothesis{
			ID:             g.nextID(),
			Text:           "No obvious campaign-level low CTR or low ROAS detected",
			Confidence:     fallbackConfidence,
			Evidence:       hypothesis.NoEvidence{},
			RequiredChecks: []string{"detailed_time_series"},
			Rationale:      "Dataset appears balanced at campaign aggregate level; recommend time-series checks.",
		})
	}

	g.logger.Info("hypotheses generated", zap.String("query", query), zap.Int("count", len(out)))
	return out
}

func (g *Generator) lowCTRHypothesis(c campaign.Aggregate, medianCTR float64) hypothesis.Hypothesis {
	confidence := lowCTRBaseConfidence + math.Max(0, medianCTR-c.CTR)
	return hypothesis.Hypothesis{
		ID:         g.nextID(),
		Text:       fmt.Sprintf("Creative underperformance in campaign '%s' (CTR %.4f)", c.CampaignName, c.CTR),
		Confidence: math.Min(confidence, lowCTRMaxConfidence),
		Evidence: hypothesis.CTREvidence{
			Campaign:    c.CampaignName,
			CTR:         c.CTR,
			CTRVsMedian: c.CTRVsMedian,
			Impressions: c.Impressions,
		},
		RequiredChecks: []string{"ctr_trend_check", "creative_message_analysis"},
		Rationale:      "CTR significantly below median and campaign has sufficient impressions.",
	}
}

func (g *Generator) lowROASHypothesis(c campaign.Aggregate) hypothesis.Hypothesis {
	return hypothesis.Hypothesis{
		ID:             g.nextID(),
		Text:           fmt.Sprintf("Low ROAS in campaign '%s' (ROAS %.2f) - possible audience mismatch or offer issue", c.CampaignName, c.ROAS),
		Confidence:     lowROASConfidence,
		Evidence:       hypothesis.ROASEvidence{Campaign: c.CampaignName, ROAS: c.ROAS},
		RequiredChecks: []string{"roas_by_audience", "spend_efficiency"},
		Rationale:      "ROAS below typical threshold; further split by audience/platform recommended.",
	}
}

func (g *Generator) nextID() core.HypothesisID {
	return core.HypothesisID(g.ids.NextID())
}
