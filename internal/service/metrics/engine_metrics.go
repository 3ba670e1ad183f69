package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"DugoutEdge/internal/domain/repository"
)

var (
	once sync.Once

	RunLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dugoutedge",
			Subsystem: "engine",
			Name:      "run_seconds",
			Help:      "Latency of scoring runs",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	RunCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dugoutedge",
			Subsystem: "engine",
			Name:      "run_candidates",
			Help:      "Qualifying candidates per run",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"method"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dugoutedge",
			Subsystem: "engine",
			Name:      "cache_requests_total",
			Help:      "Result cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dugoutedge",
			Subsystem: "engine",
			Name:      "errors_total",
			Help:      "Errors by kind",
		},
		[]string{"kind"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(RunLatency, RunCandidates, CacheHits, Errors)
	})
}

// Recorder implements the domain Metrics interface over the package
// collectors.
type Recorder struct{}

func NewRecorder() repository.Metrics {
	Register()
	return Recorder{}
}

func (Recorder) RecordRun(method string, candidates int, seconds float64) {
	RunLatency.WithLabelValues(method).Observe(seconds)
	RunCandidates.WithLabelValues(method).Observe(float64(candidates))
}

func (Recorder) RecordCacheHit(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheHits.WithLabelValues(outcome).Inc()
}

func (Recorder) RecordError(kind string) {
	Errors.WithLabelValues(kind).Inc()
}
