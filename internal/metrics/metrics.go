package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	MessagesIngested   *prometheus.CounterVec
	EnrichmentRequests *prometheus.CounterVec
	EnrichmentLatency  *prometheus.HistogramVec
	HTTPErrors         *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
// The namespace of the first call wins.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			MessagesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_ingested_total",
				Help:      "Total messages persisted, by channel and direction.",
			}, []string{"channel", "direction"}),
			EnrichmentRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "enrichment_requests_total",
				Help:      "Total enrichment operations by outcome.",
			}, []string{"operation", "status"}),
			EnrichmentLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "enrichment_request_duration_seconds",
				Help:      "Latency distribution for LLM provider calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"operation"}),
			HTTPErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_errors_total",
				Help:      "Total 5xx responses grouped by route.",
			}, []string{"route"}),
		}

		prometheus.MustRegister(
			metricsInstance.MessagesIngested,
			metricsInstance.EnrichmentRequests,
			metricsInstance.EnrichmentLatency,
			metricsInstance.HTTPErrors,
		)
	})
	return metricsInstance
}
