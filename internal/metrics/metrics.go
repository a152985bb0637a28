package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adhypo/domain/hypothesis"
)

const namespace = "adhypo"

// Run outcomes
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Recorder counts pipeline activity on its own registry
type Recorder struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	hypotheses  *prometheus.CounterVec
	lowCTR      prometheus.Counter
	runDuration prometheus.Histogram
}

// NewRecorder creates a recorder with all collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"status"}),
		hypotheses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hypotheses_total",
			Help:      "Validated hypotheses by final verdict.",
		}, []string{"verdict"}),
		lowCTR: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "low_ctr_campaigns_total",
			Help:      "Campaigns flagged as low CTR across runs.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a pipeline run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(
		r.runs,
		r.hypotheses,
		r.lowCTR,
		r.runDuration,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveRun records a finished run. validated and lowCTR are ignored when
// the run failed.
func (r *Recorder) ObserveRun(status string, elapsed time.Duration, validated []hypothesis.Validated, lowCTR int) {
	r.runs.WithLabelValues(status).Inc()
	r.runDuration.Observe(elapsed.Seconds())
	if status != StatusSuccess {
		return
	}
	for _, v := range validated {
		r.hypotheses.WithLabelValues(string(v.FinalVerdict)).Inc()
	}
	r.lowCTR.Add(float64(lowCTR))
}

// Handler exposes the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
