package httpclient

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Version is reported in the default User-Agent.
const Version = "0.4.0"

// Config configures a Client. It is copied on construction; changing a
// Config after New has no effect on the Client built from it.
type Config struct {
	// Provider names the routing service, used for error messages, log
	// fields and metric labels (e.g., "osrm", "valhalla").
	Provider string

	// BaseURL is the scheme, host and optional path prefix of the service.
	// Required.
	BaseURL string

	// UserAgent is the User-Agent header value.
	// Default: "routekit/<version>". Must be non-empty.
	UserAgent string

	// Timeout bounds a single HTTP attempt.
	// Default: 60s. Must be > 0.
	Timeout time.Duration

	// RetryTimeout bounds the wall-clock time spent on one logical request
	// across all of its attempts and backoff sleeps.
	// Default: 60s. Must be > 0.
	RetryTimeout time.Duration

	// RetriableStatuses are retried without inspecting the body.
	// Default: [503].
	RetriableStatuses []int

	// RetryOverQueryLimit retries HTTP 429 responses within RetryTimeout.
	// When false a 429 fails immediately with OverQueryLimitError.
	// Default: true.
	RetryOverQueryLimit bool

	// SkipAPIError turns a RouterAPIError into a logged warning and a nil
	// result instead of an error.
	// Default: false.
	SkipAPIError bool

	// Headers are added to every request.
	Headers map[string]string

	// ProxyURL routes requests through an HTTP proxy. When empty the
	// standard proxy environment variables apply.
	ProxyURL string

	// RequestsPerSecond enables client-side rate limiting (0 = unlimited).
	RequestsPerSecond float64

	// Burst is the rate limiter bucket size. Default: 1.
	Burst int

	// Logger receives request and retry logs. Default: slog.Default().
	Logger *slog.Logger

	// TracerProvider creates request spans. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Transport replaces the base HTTP transport (mainly for tests).
	// Logging and header injection still wrap it.
	Transport http.RoundTripper

	// DryRunOutput receives the request dump of dry-run requests.
	// Default: os.Stdout.
	DryRunOutput io.Writer
}

// DefaultConfig returns a Config with the library defaults for the given
// provider and base URL.
func DefaultConfig(provider, baseURL string) Config {
	return Config{
		Provider:            provider,
		BaseURL:             baseURL,
		UserAgent:           "routekit/" + Version,
		Timeout:             60 * time.Second,
		RetryTimeout:        60 * time.Second,
		RetriableStatuses:   []int{http.StatusServiceUnavailable},
		RetryOverQueryLimit: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url %q is invalid: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url %q must use http or https", c.BaseURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}

	if c.RetryTimeout <= 0 {
		return fmt.Errorf("retry_timeout must be > 0, got %v", c.RetryTimeout)
	}

	for _, status := range c.RetriableStatuses {
		if status < 100 || status > 599 {
			return fmt.Errorf("retriable status %d is not an HTTP status", status)
		}
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required and must be non-empty")
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0, got %v", c.RequestsPerSecond)
	}

	if c.Burst < 0 {
		return fmt.Errorf("burst must be >= 0, got %d", c.Burst)
	}

	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return fmt.Errorf("proxy_url %q is invalid: %w", c.ProxyURL, err)
		}
	}

	return nil
}

// clone returns a deep copy so a Client never shares mutable state with
// its caller.
func (c Config) clone() Config {
	out := c
	if c.RetriableStatuses != nil {
		out.RetriableStatuses = append([]int(nil), c.RetriableStatuses...)
	}
	if c.Headers != nil {
		out.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			out.Headers[k] = v
		}
	}
	return out
}
