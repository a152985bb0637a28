package referee

import (
	"math"

	"go.uber.org/zap"

	"adhypo/domain/campaign"
	"adhypo/domain/hypothesis"
	"adhypo/domain/verdict"
)

// Evaluator validates hypotheses against thresholds derived from the summary
type Evaluator struct {
	minImpressions int
	logger         *zap.Logger
}

// NewEvaluator creates an evaluator that requires minImpressions before a
// CTR hypothesis can be accepted
func NewEvaluator(minImpressions int, logger *zap.Logger) *Evaluator {
	return &Evaluator{minImpressions: minImpressions, logger: logger.Named("referee")}
}

// Validate runs the checks matching each hypothesis' evidence kind. Output
// order and length match the input.
func (e *Evaluator) Validate(hyps []hypothesis.Hypothesis, summary *campaign.Summary) []hypothesis.Validated {
	medianCTR := 0.0
	if summary != nil {
		medianCTR = summary.Meta.MedianCTR
	}

	out := make([]hypothesis.Validated, 0, len(hyps))
	for _, h := range hyps {
		v := e.validateOne(h, medianCTR)
		e.logger.Debug("hypothesis validated",
			zap.String("id", h.ID.String()),
			zap.String("evidence", hypothesis.Kind(h.Evidence)),
			zap.String("verdict", string(v.FinalVerdict)),
			zap.Float64("confidence", v.AdjustedConfidence))
		out = append(out, v)
	}
	return out
}

func (e *Evaluator) validateOne(h hypothesis.Hypothesis, medianCTR float64) hypothesis.Validated {
	evidence := h.Evidence
	if evidence == nil {
		evidence = hypothesis.NoEvidence{}
	}

	var (
		tests      []verdict.TestResult
		confidence float64
		final      verdict.Verdict
	)

	switch ev := evidence.(type) {
	case hypothesis.CTREvidence:
		tests, confidence, final = e.checkCTR(ev, h.Confidence, medianCTR)
	case hypothesis.ROASEvidence:
		tests, confidence, final = checkROAS(ev, h.Confidence)
	default:
		tests = []verdict.TestResult{{Name: verdict.TestNoNumericEvidence, Value: 0, Pass: false}}
		confidence = h.Confidence
		final = verdict.NeedsMoreData
	}

	return hypothesis.Validated{
		ID:                 h.ID,
		Text:               h.Text,
		Evidence:           evidence,
		Validation:         hypothesis.Validation{Tests: tests},
		AdjustedConfidence: clampUnit(confidence),
		FinalVerdict:       final,
	}
}

func (e *Evaluator) checkCTR(ev hypothesis.CTREvidence, base, medianCTR float64) ([]verdict.TestResult, float64, verdict.Verdict) {
	impressionsOK := ev.Impressions >= e.minImpressions

	delta := 0.0
	if medianCTR > 0 {
		delta = (ev.CTR - medianCTR) / medianCTR
	}
	deltaOK := delta < CTR_DELTA_CUTOFF

	confidence := base * FAILED_CHECK_DECAY
	if delta < 0 {
		confidence = base + (-delta)*CTR_DELTA_WEIGHT
	}
	confidence = math.Min(confidence, CTR_CONFIDENCE_CAP)

	tests := []verdict.TestResult{
		{Name: verdict.TestMinImpressions, Value: float64(ev.Impressions), Pass: impressionsOK},
		{Name: verdict.TestPctDeltaVsMedian, Value: finite(delta), Pass: deltaOK},
	}

	switch {
	case impressionsOK && deltaOK:
		return tests, confidence, verdict.Accept
	case !impressionsOK:
		return tests, confidence, verdict.NeedsMoreData
	default:
		return tests, confidence, verdict.Reject
	}
}

func checkROAS(ev hypothesis.ROASEvidence, base float64) ([]verdict.TestResult, float64, verdict.Verdict) {
	pass := ev.ROAS < ROAS_CUTOFF

	confidence := base * FAILED_CHECK_DECAY
	final := verdict.Reject
	if pass {
		confidence = base + (ROAS_CUTOFF-ev.ROAS)*ROAS_GAP_WEIGHT
		final = verdict.Accept
	}
	confidence = math.Min(confidence, ROAS_CONFIDENCE_CAP)

	tests := []verdict.TestResult{{Name: verdict.TestROASValue, Value: finite(ev.ROAS), Pass: pass}}
	return tests, confidence, final
}

// clampUnit bounds v to [0, 1]; NaN maps to 0.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// finite keeps test values JSON-encodable.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
