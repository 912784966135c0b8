package httpclient

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tombee/routekit/internal/tracing"
)

// loggingTransport wraps an http.RoundTripper to add:
// - User-Agent, X-Request-ID and static header injection
// - Per-attempt logging with sanitized URLs
// - Duration tracking
type loggingTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   map[string]string
	provider  string
	logger    *slog.Logger
}

// newLoggingTransport creates a new logging transport that wraps the base transport.
func newLoggingTransport(base http.RoundTripper, cfg Config, logger *slog.Logger) *loggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &loggingTransport{
		base:      base,
		userAgent: cfg.UserAgent,
		headers:   cfg.Headers,
		provider:  cfg.Provider,
		logger:    logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())

	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	tracing.InjectIntoRequest(req.Context(), req)

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()

	attrs := []any{
		"provider", t.provider,
		"method", req.Method,
		"url", sanitizeURL(req.URL),
		"duration_ms", duration,
	}
	if id := tracing.FromContextOrEmpty(req.Context()); id != "" {
		attrs = append(attrs, "request_id", id.String())
	}

	if err != nil {
		t.logger.Warn("http request failed", append(attrs, "error", err.Error())...)
		return resp, err
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	t.logger.Log(req.Context(), level, "http request", append(attrs, "status", resp.StatusCode)...)

	return resp, nil
}
