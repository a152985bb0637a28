package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adhypo/domain/hypothesis"
	"adhypo/domain/verdict"
)

func TestObserveRun(t *testing.T) {
	r := NewRecorder()
	validated := []hypothesis.Validated{
		{FinalVerdict: verdict.Accept},
		{FinalVerdict: verdict.Accept},
		{FinalVerdict: verdict.NeedsMoreData},
	}

	r.ObserveRun(StatusSuccess, 120*time.Millisecond, validated, 2)
	r.ObserveRun(StatusFailure, time.Millisecond, validated, 5)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues(StatusFailure)))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.hypotheses.WithLabelValues("accept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.hypotheses.WithLabelValues("needs_more_data")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.lowCTR))
}

func TestHandlerExposesCounters(t *testing.T) {
	r := NewRecorder()
	r.ObserveRun(StatusSuccess, time.Second, nil, 1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `adhypo_runs_total{status="success"} 1`)
	assert.Contains(t, string(body), "adhypo_low_ctr_campaigns_total 1")
	assert.Contains(t, string(body), "adhypo_run_duration_seconds_count 1")
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.ObserveRun(StatusSuccess, 0, nil, 3)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.lowCTR))
}
