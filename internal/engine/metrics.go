package engine

import "github.com/prometheus/client_golang/prometheus"

// Metric label values for proof backends and outcomes.
const (
	backendMock     = "mock"
	backendExternal = "external"
)

var (
	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "zkp_queue_depth",
			Help: "Number of proof jobs waiting in the work queue.",
		},
	)

	workersBusy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "zkp_workers_busy",
			Help: "Number of workers currently executing a proof job.",
		},
	)

	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "zkp_proof_jobs_total",
			Help: "Total number of proof jobs processed, by backend and outcome.",
		},
		[]string{"backend", "status"},
	)

	proofDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "zkp_proof_duration_seconds",
			Help:    "Proof generation time in seconds, by backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
)

func init() {
	prometheus.MustRegister(queueDepth)
	prometheus.MustRegister(workersBusy)
	prometheus.MustRegister(jobsTotal)
	prometheus.MustRegister(proofDuration)

	// Pre-initialize counter label combinations so they appear in /metrics
	// with value 0 from startup, rather than only after first observation.
	for _, b := range []string{backendMock, backendExternal} {
		jobsTotal.WithLabelValues(b, "completed")
		jobsTotal.WithLabelValues(b, "failed")
	}
}
