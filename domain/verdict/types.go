package verdict

// Verdict is the evaluator's disposition for a hypothesis
type Verdict string

const (
	Accept        Verdict = "accept"
	Reject        Verdict = "reject"
	NeedsMoreData Verdict = "needs_more_data"
)

// TestResult is the outcome of one named threshold check
type TestResult struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Pass  bool    `json:"pass"`
}

// Named checks run by the evaluator
const (
	TestMinImpressions    = "min_impressions"
	TestPctDeltaVsMedian  = "pct_delta_vs_median"
	TestROASValue         = "roas_value"
	TestNoNumericEvidence = "no_numeric_evidence"
)
