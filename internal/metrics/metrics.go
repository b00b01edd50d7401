package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ClientRequests counts dispatched OCHP calls, labeled by SOAP action and result code.
	ClientRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ochp_client_requests_total",
		Help: "Total number of OCHP requests issued by clients.",
	}, []string{"action", "result_code"})

	// ClientFaults counts calls whose channel failed, labeled by fault kind (soap_fault, http_error, exception).
	ClientFaults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ochp_client_faults_total",
		Help: "Total number of OCHP client calls that failed below the protocol layer.",
	}, []string{"action", "kind"})

	// ClientRequestDuration observes the round trip of each call, labeled by SOAP action.
	ClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ochp_client_request_duration_seconds",
		Help:    "Histogram of OCHP client round-trip times.",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms .. ~10s
	}, []string{"action"})

	// ServerRequests counts served OCHP calls, labeled by SOAP action and result code.
	ServerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ochp_server_requests_total",
		Help: "Total number of OCHP requests handled by servers.",
	}, []string{"action", "result_code"})

	// StoreOperations counts store calls, labeled by store name and operation.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ochp_store_operations_total",
		Help: "Total number of clearing house store operations.",
	}, []string{"store", "op"})

	// EventsPublished counts the total number of events published to Kafka, labeled by event type.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ochp_events_published_total",
		Help: "Total number of events published to the message broker.",
	}, []string{"event_type"})

	// StatusCommandsConsumed counts EVSE status commands consumed from Kafka, labeled by outcome.
	StatusCommandsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ochp_status_commands_consumed_total",
		Help: "Total number of EVSE status commands consumed from the message broker.",
	}, []string{"kind"})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
