package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks outbound calls to the BT Wholesale API.
	BTWRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btw_api_requests_total",
			Help: "Total number of BT Wholesale API requests made (by endpoint, method and status).",
		},
		[]string{"endpoint", "method", "status"},
	)

	BTWRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "btw_api_request_duration_seconds",
			Help:    "Duration of BT Wholesale API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms → ~20s
		},
		[]string{"endpoint", "method"},
	)

	// Quotes served, by scenario tag and outcome.
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btw_quotes_total",
			Help: "Quote requests processed by scenario and result.",
		},
		[]string{"scenario", "result"}, // result = "ok" | error kind
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "btw_quote_duration_seconds",
			Help:    "End-to-end quote latency including vendor calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scenario"},
	)

	TokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "btw_token_refresh_total",
			Help: "Access token refresh attempts by result.",
		},
		[]string{"result"},
	)

	NATSMessageCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_total",
			Help: "Total number of NATS messages published.",
		},
		[]string{"subject", "result"}, // result = "ok" | "error"
	)

	NATSMessageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nats_message_latency_seconds",
			Help:    "Time taken to publish NATS messages",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"subject"},
	)

	SecretsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secrets_cache_access_total",
			Help: "Number of cache hits/misses in secret cache.",
		},
		[]string{"result"}, // hit | miss
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_errors_total",
			Help: "Count of adapter-level errors by component.",
		},
		[]string{"component", "reason"},
	)
)

// ObserveDuration records the time since start on a histogram.
func ObserveDuration(h *prometheus.HistogramVec, start time.Time, labels ...string) {
	h.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}

func IncBTWRequest(endpoint, method, status string) {
	BTWRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RequestObserver returns an httpclient observer bound to an endpoint label.
func RequestObserver(endpoint string) func(method, status string, elapsed time.Duration) {
	return func(method, status string, elapsed time.Duration) {
		IncBTWRequest(endpoint, method, status)
		BTWRequestDuration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
	}
}

func IncQuote(scenario, result string) {
	QuotesTotal.WithLabelValues(scenario, result).Inc()
}

func IncTokenRefresh(result string) {
	TokenRefreshTotal.WithLabelValues(result).Inc()
}

func IncNATSMessage(subject, result string) {
	NATSMessageCount.WithLabelValues(subject, result).Inc()
}

func IncCacheHit(hit bool) {
	if hit {
		SecretsCacheHits.WithLabelValues("hit").Inc()
		return
	}
	SecretsCacheHits.WithLabelValues("miss").Inc()
}

func IncError(component, reason string) {
	ErrorsTotal.WithLabelValues(component, reason).Inc()
}
