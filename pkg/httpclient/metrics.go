package httpclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequests counts HTTP attempts by provider and status code
	// ("error" when no response was received)
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routekit_http_requests_total",
			Help: "Total HTTP attempts against routing providers by provider and status code",
		},
		[]string{"provider", "code"},
	)

	// httpRetries counts retries by provider and reason
	httpRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routekit_http_retries_total",
			Help: "Total retried attempts by provider and reason",
		},
		[]string{"provider", "reason"},
	)

	// httpDuration tracks the duration of logical requests including retries
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routekit_http_request_duration_seconds",
			Help:    "Duration of logical requests including retries and backoff",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)
)

// Retry reasons used as metric labels.
const (
	retryReasonStatus         = "status"
	retryReasonOverQueryLimit = "over_query_limit"
)

func providerLabel(provider string) string {
	if provider == "" {
		return "unknown"
	}
	return provider
}

// recordAttempt increments the attempt counter
func recordAttempt(provider string, status int) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	httpRequests.WithLabelValues(providerLabel(provider), code).Inc()
}

// recordRetry increments the retry counter
func recordRetry(provider, reason string) {
	httpRetries.WithLabelValues(providerLabel(provider), reason).Inc()
}

// recordDuration observes a logical request duration
func recordDuration(provider string, d time.Duration) {
	httpDuration.WithLabelValues(providerLabel(provider)).Observe(d.Seconds())
}
