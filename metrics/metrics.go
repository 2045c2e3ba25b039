// Package metrics exposes Prometheus instruments for score recalculation and
// the match lock job. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK      = "ok"
	ResultPartial = "partial"
	ResultAborted = "aborted"
)

type Recorder struct {
	registry             *prometheus.Registry
	recalculations       *prometheus.CounterVec
	recalculationLatency prometheus.Histogram
	scoreUpdateFailures  prometheus.Counter
	matchesLocked        prometheus.Counter
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		recalculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiniela",
			Name:      "recalculations_total",
			Help:      "Full score recalculations by outcome.",
		}, []string{"result"}),
		recalculationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quiniela",
			Name:      "recalculation_duration_seconds",
			Help:      "Time spent reading inputs and writing every user's totals.",
			Buckets:   prometheus.DefBuckets,
		}),
		scoreUpdateFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiniela",
			Name:      "score_update_failures_total",
			Help:      "Per-user score writes that failed during recalculation.",
		}),
		matchesLocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiniela",
			Name:      "matches_locked_total",
			Help:      "Matches closed for predictions by the lock job.",
		}),
	}
	reg.MustRegister(r.recalculations, r.recalculationLatency, r.scoreUpdateFailures, r.matchesLocked)
	return r
}

func (r *Recorder) RecordRecalculation(result string, duration time.Duration, failedWrites int) {
	if r == nil {
		return
	}
	r.recalculations.WithLabelValues(result).Inc()
	r.recalculationLatency.Observe(duration.Seconds())
	if failedWrites > 0 {
		r.scoreUpdateFailures.Add(float64(failedWrites))
	}
}

func (r *Recorder) RecordMatchesLocked(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.matchesLocked.Add(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
