package referee

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adhypo/domain/campaign"
	"adhypo/domain/hypothesis"
	"adhypo/domain/verdict"
)

func summaryWithMedian(m float64) *campaign.Summary {
	return &campaign.Summary{Meta: campaign.SummaryMeta{MedianCTR: m}}
}

func TestValidateCTR(t *testing.T) {
	tests := []struct {
		name           string
		evidence       hypothesis.CTREvidence
		median         float64
		base           float64
		wantVerdict    verdict.Verdict
		wantConfidence float64
		wantPass       []bool
	}{
		{
			name:           "accepted when both checks pass",
			evidence:       hypothesis.CTREvidence{Campaign: "A", CTR: 0.01, Impressions: 5000},
			median:         0.02,
			base:           0.5,
			wantVerdict:    verdict.Accept,
			wantConfidence: 0.75,
			wantPass:       []bool{true, true},
		},
		{
			name:           "too few impressions",
			evidence:       hypothesis.CTREvidence{Campaign: "A", CTR: 0.01, Impressions: 500},
			median:         0.02,
			base:           0.5,
			wantVerdict:    verdict.NeedsMoreData,
			wantConfidence: 0.75,
			wantPass:       []bool{false, true},
		},
		{
			name:           "delta within tolerance",
			evidence:       hypothesis.CTREvidence{Campaign: "A", CTR: 0.0198, Impressions: 5000},
			median:         0.02,
			base:           0.5,
			wantVerdict:    verdict.Reject,
			wantConfidence: 0.505,
			wantPass:       []bool{true, false},
		},
		{
			name:           "above median decays confidence",
			evidence:       hypothesis.CTREvidence{Campaign: "A", CTR: 0.03, Impressions: 5000},
			median:         0.02,
			base:           0.5,
			wantVerdict:    verdict.Reject,
			wantConfidence: 0.45,
			wantPass:       []bool{true, false},
		},
		{
			name:           "zero median gives zero delta",
			evidence:       hypothesis.CTREvidence{Campaign: "A", CTR: 0, Impressions: 5000},
			median:         0,
			base:           0.5,
			wantVerdict:    verdict.Reject,
			wantConfidence: 0.45,
			wantPass:       []bool{true, false},
		},
		{
			name:           "capped below one",
			evidence:       hypothesis.CTREvidence{Campaign: "A", CTR: 0, Impressions: 5000},
			median:         0.02,
			base:           0.9,
			wantVerdict:    verdict.Accept,
			wantConfidence: 0.99,
			wantPass:       []bool{true, true},
		},
	}

	ev := NewEvaluator(1000, zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hypothesis.Hypothesis{ID: "h1", Text: "t", Confidence: tt.base, Evidence: tt.evidence}
			out := ev.Validate([]hypothesis.Hypothesis{h}, summaryWithMedian(tt.median))
			require.Len(t, out, 1)

			v := out[0]
			assert.Equal(t, tt.wantVerdict, v.FinalVerdict)
			assert.InDelta(t, tt.wantConfidence, v.AdjustedConfidence, 1e-9)
			require.Len(t, v.Validation.Tests, 2)
			assert.Equal(t, verdict.TestMinImpressions, v.Validation.Tests[0].Name)
			assert.Equal(t, float64(tt.evidence.Impressions), v.Validation.Tests[0].Value)
			assert.Equal(t, verdict.TestPctDeltaVsMedian, v.Validation.Tests[1].Name)
			assert.Equal(t, tt.wantPass, []bool{v.Validation.Tests[0].Pass, v.Validation.Tests[1].Pass})
			assert.Equal(t, tt.evidence, v.Evidence)
		})
	}
}

func TestValidateROAS(t *testing.T) {
	tests := []struct {
		name           string
		roas           float64
		base           float64
		wantVerdict    verdict.Verdict
		wantConfidence float64
	}{
		{"low roas accepted", 0.3, 0.45, verdict.Accept, 0.51},
		{"cutoff is exclusive", 0.5, 0.45, verdict.Reject, 0.405},
		{"healthy roas rejected", 2.0, 0.45, verdict.Reject, 0.405},
		{"pass branch capped", 0, 0.9, verdict.Accept, 0.95},
		{"fail branch capped", 3, 1.2, verdict.Reject, 0.95},
	}

	ev := NewEvaluator(1000, zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hypothesis.Hypothesis{ID: "h1", Confidence: tt.base, Evidence: hypothesis.ROASEvidence{Campaign: "A", ROAS: tt.roas}}
			out := ev.Validate([]hypothesis.Hypothesis{h}, summaryWithMedian(0.02))
			require.Len(t, out, 1)

			v := out[0]
			assert.Equal(t, tt.wantVerdict, v.FinalVerdict)
			assert.InDelta(t, tt.wantConfidence, v.AdjustedConfidence, 1e-9)
			require.Len(t, v.Validation.Tests, 1)
			assert.Equal(t, verdict.TestROASValue, v.Validation.Tests[0].Name)
			assert.Equal(t, tt.roas, v.Validation.Tests[0].Value)
		})
	}
}

func TestValidateNoEvidence(t *testing.T) {
	ev := NewEvaluator(1000, zap.NewNop())
	hyps := []hypothesis.Hypothesis{
		{ID: "a", Confidence: 0.4, Evidence: hypothesis.NoEvidence{}},
		{ID: "b", Confidence: 0.4},
	}

	out := ev.Validate(hyps, summaryWithMedian(0.02))
	require.Len(t, out, 2)
	for _, v := range out {
		assert.Equal(t, verdict.NeedsMoreData, v.FinalVerdict)
		assert.Equal(t, 0.4, v.AdjustedConfidence)
		assert.Equal(t, []verdict.TestResult{{Name: verdict.TestNoNumericEvidence, Value: 0, Pass: false}}, v.Validation.Tests)
		assert.Equal(t, hypothesis.NoEvidence{}, v.Evidence)
	}
}

func TestValidatePreservesOrderAndInput(t *testing.T) {
	hyps := []hypothesis.Hypothesis{
		{ID: "1", Confidence: 0.5, Evidence: hypothesis.ROASEvidence{ROAS: 0.1}},
		{ID: "2", Confidence: 0.5, Evidence: hypothesis.CTREvidence{CTR: 0.001, Impressions: 10}},
		{ID: "3", Confidence: 0.4, Evidence: hypothesis.NoEvidence{}},
	}
	before := append([]hypothesis.Hypothesis(nil), hyps...)

	out := NewEvaluator(1000, zap.NewNop()).Validate(hyps, summaryWithMedian(0.02))
	require.Len(t, out, 3)
	for i := range hyps {
		assert.Equal(t, hyps[i].ID, out[i].ID)
	}
	assert.Equal(t, before, hyps)
}

func TestConfidenceAlwaysInUnitInterval(t *testing.T) {
	weird := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -5, -0.1, 0, 0.5, 1, 7}
	ev := NewEvaluator(1000, zap.NewNop())

	var hyps []hypothesis.Hypothesis
	for _, base := range weird {
		for _, x := range weird {
			hyps = append(hyps,
				hypothesis.Hypothesis{Confidence: base, Evidence: hypothesis.CTREvidence{CTR: x, Impressions: 2000}},
				hypothesis.Hypothesis{Confidence: base, Evidence: hypothesis.ROASEvidence{ROAS: x}},
				hypothesis.Hypothesis{Confidence: base, Evidence: hypothesis.NoEvidence{}},
			)
		}
	}

	for _, median := range weird {
		for _, v := range ev.Validate(hyps, summaryWithMedian(median)) {
			assert.False(t, math.IsNaN(v.AdjustedConfidence))
			assert.GreaterOrEqual(t, v.AdjustedConfidence, 0.0)
			assert.LessOrEqual(t, v.AdjustedConfidence, 1.0)
			for _, tr := range v.Validation.Tests {
				assert.False(t, math.IsNaN(tr.Value) || math.IsInf(tr.Value, 0))
			}
		}
	}
}
