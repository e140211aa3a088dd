package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM completion latencies,
// from 100ms up to two minutes.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// DispatchTotal counts dispatched completion requests by provider and outcome.
	DispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmdispatch_requests_total",
			Help: "Dispatched completion requests",
		},
		[]string{"provider", "status"},
	)

	// DispatchDuration records end-to-end completion latency in seconds.
	DispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmdispatch_request_duration_seconds",
			Help:    "Completion request duration",
			Buckets: LLMBuckets,
		},
		[]string{"provider"},
	)

	// TokensTotal counts tokens reported by providers, by direction
	// (prompt/completion).
	TokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmdispatch_tokens_total",
			Help: "Token count",
		},
		[]string{"provider", "direction"},
	)
)

func init() {
	prometheus.MustRegister(
		DispatchTotal,
		DispatchDuration,
		TokensTotal,
	)
}
