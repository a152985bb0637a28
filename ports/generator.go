package ports

import (
	"adhypo/domain/campaign"
	"adhypo/domain/creative"
	"adhypo/domain/hypothesis"
)

// SummarizerPort reduces loaded rows to campaign aggregates and dataset statistics
type SummarizerPort interface {
	Summarize(rows []campaign.Row) *campaign.Summary
}

// GeneratorPort creates hypothesis candidates from a data summary
type GeneratorPort interface {
	GenerateHypotheses(summary *campaign.Summary, query string) []hypothesis.Hypothesis
}

// EvaluatorPort re-scores hypotheses against the numeric evidence of a run
type EvaluatorPort interface {
	Validate(hypotheses []hypothesis.Hypothesis, summary *campaign.Summary) []hypothesis.Validated
}

// CreativePort proposes copy variants for the low-CTR campaigns of a summary
type CreativePort interface {
	Generate(summary *campaign.Summary) []creative.CampaignCreatives
}
