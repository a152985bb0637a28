package run

import (
	"adhypo/domain/campaign"
	"adhypo/domain/core"
	"adhypo/domain/creative"
	"adhypo/domain/hypothesis"
	"adhypo/domain/verdict"
)

// Task is one step of the fixed analysis plan
type Task struct {
	TaskID         string   `json:"task_id"`
	Description    string   `json:"description"`
	RequiredInputs []string `json:"required_inputs"`
	ExpectedOutput string   `json:"expected_output"`
}

// Plan is the decomposition of a free-text query into tasks
type Plan struct {
	Query      string  `json:"query"`
	Tasks      []Task  `json:"tasks"`
	Confidence float64 `json:"confidence"`
}

// Meta carries run bookkeeping that is not part of the analysis itself
type Meta struct {
	StartedAt   string         `json:"started_at"`
	Fingerprint RunFingerprint `json:"fingerprint"`
}

// Result is the combined record of one pipeline execution
type Result struct {
	RunID       core.RunID                   `json:"run_id"`
	Query       string                       `json:"query"`
	GeneratedAt string                       `json:"generated_at"`
	Plan        Plan                         `json:"plan"`
	Insights    hypothesis.Insights          `json:"insights"`
	Creatives   []creative.CampaignCreatives `json:"creatives"`
	Report      string                       `json:"report"`
	DataSummary campaign.Summary             `json:"data_summary"`
	Meta        Meta                         `json:"meta"`
}

// AcceptedCount returns how many validated hypotheses were accepted
func (r *Result) AcceptedCount() int {
	n := 0
	for _, h := range r.Insights.Hypotheses {
		if h.FinalVerdict == verdict.Accept {
			n++
		}
	}
	return n
}
