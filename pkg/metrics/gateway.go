package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "checkout",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Payment gateway call latency in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation", "outcome"},
	)

	SessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "checkout",
			Subsystem: "gateway",
			Name:      "sessions_created_total",
			Help:      "Total number of checkout sessions created at the gateway",
		},
	)
)

func init() {
	Registry.MustRegister(GatewayRequestDuration, SessionsCreatedTotal)
}
