package app

import "adhypo/domain/run"

// Plan task identifiers, in execution order
const (
	TaskLoadData           = "load_data"
	TaskSummarizeMetrics   = "summarize_metrics"
	TaskGenerateHypotheses = "generate_hypotheses"
	TaskValidateHypotheses = "validate_hypotheses"
	TaskGenerateCreatives  = "generate_creatives"
)

const planConfidence = 0.9

// Planner decomposes a query into the fixed analysis plan. The query text
// does not change the task list.
type Planner struct{}

// NewPlanner creates a planner
func NewPlanner() *Planner {
	return &Planner{}
}

// Decompose returns the five-step plan for query
func (p *Planner) Decompose(query string) run.Plan {
	return run.Plan{
		Query: query,
		Tasks: []run.Task{
			{
				TaskID:         TaskLoadData,
				Description:    "Load and validate dataset",
				RequiredInputs: []string{},
				ExpectedOutput: "data_summary",
			},
			{
				TaskID:         TaskSummarizeMetrics,
				Description:    "Compute campaign-level metrics and detect low-CTR campaigns",
				RequiredInputs: []string{"data_summary"},
				ExpectedOutput: "campaign_summaries",
			},
			{
				TaskID:         TaskGenerateHypotheses,
				Description:    "Create hypotheses explaining ROAS/CTR patterns",
				RequiredInputs: []string{"campaign_summaries"},
				ExpectedOutput: "hypotheses",
			},
			{
				TaskID:         TaskValidateHypotheses,
				Description:    "Quantitatively validate each hypothesis",
				RequiredInputs: []string{"hypotheses", "data_summary"},
				ExpectedOutput: "validated_hypotheses",
			},
			{
				TaskID:         TaskGenerateCreatives,
				Description:    "Produce creative variants for low-CTR campaigns",
				RequiredInputs: []string{"low_ctr_campaigns", "top_creative_messages"},
				ExpectedOutput: "creatives",
			},
		},
		Confidence: planConfidence,
	}
}
