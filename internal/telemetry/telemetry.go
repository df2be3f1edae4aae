package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RPCMetrics records backend job invocations: a counter per script/outcome
// and a latency histogram per script. Satisfies windmill.MetricsRecorder.
type RPCMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRPCMetrics registers the RPC collectors on the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use a fresh
// prometheus.NewRegistry.
func NewRPCMetrics(namespace string, reg prometheus.Registerer) *RPCMetrics {
	m := &RPCMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Backend job invocations by script path and outcome.",
		}, []string{"path", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "Backend job invocation latency by script path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// ObserveRPC records one completed invocation.
func (m *RPCMetrics) ObserveRPC(path, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(path, outcome).Inc()
	m.duration.WithLabelValues(path).Observe(elapsed.Seconds())
}
