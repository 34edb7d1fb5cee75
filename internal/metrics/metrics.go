// README: Prometheus collectors for the chat relay and its upstream providers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Chat outcomes.
const (
	OutcomeClarify = "clarify"
	OutcomeAnswer  = "answer"
	OutcomeRoute   = "route"
	OutcomeApology = "route_apology"
	OutcomeError   = "error"
)

var (
	ChatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nusavarta_chat_messages_total",
			Help: "Chat messages handled, by outcome",
		},
		[]string{"outcome"},
	)

	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nusavarta_oracle_requests_total",
			Help: "Language model calls, by purpose and status",
		},
		[]string{"purpose", "status"},
	)

	MapsRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nusavarta_maps_requests_total",
			Help: "Maps provider calls, by operation and status",
		},
		[]string{"operation", "status"},
	)

	RouteBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nusavarta_route_build_duration_seconds",
			Help:    "Time spent building a cultural route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
)

// Status turns an error into a low-cardinality label value.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
