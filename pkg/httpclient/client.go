package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/tombee/routekit/internal/log"
	"github.com/tombee/routekit/internal/tracing"
	routeerrors "github.com/tombee/routekit/pkg/errors"
)

// tracerName identifies spans emitted by this package.
const tracerName = "github.com/tombee/routekit/pkg/httpclient"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 64 << 20

// Client issues requests against one routing service. It owns a single
// connection-reusing http.Client. Configuration is read-only after New.
type Client struct {
	cfg        Config
	baseURL    string
	policy     RetryPolicy
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	tracer     trace.Tracer
	dryRunOut  io.Writer

	// jitter returns a backoff multiplier in [0.5, 1.5).
	jitter func() float64
}

// New creates a Client with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &routeerrors.ConfigError{Key: "http", Reason: err.Error(), Cause: err}
	}
	cfg = cfg.clone()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	base := cfg.Transport
	if base == nil {
		proxy := http.ProxyFromEnvironment
		if cfg.ProxyURL != "" {
			proxyURL, err := url.Parse(cfg.ProxyURL)
			if err != nil {
				return nil, &routeerrors.ConfigError{Key: "proxy_url", Reason: "invalid URL", Cause: err}
			}
			proxy = http.ProxyURL(proxyURL)
		}

		base = &http.Transport{
			Proxy: proxy,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},

			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,

			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: cfg.Timeout,
			ExpectContinueTimeout: 1 * time.Second,
		}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst == 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	dryRunOut := cfg.DryRunOutput
	if dryRunOut == nil {
		dryRunOut = os.Stdout
	}

	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		policy:  policyFromConfig(cfg),
		httpClient: &http.Client{
			Transport: newLoggingTransport(base, cfg, logger),
			Timeout:   cfg.Timeout,
		},
		limiter:   limiter,
		logger:    logger,
		tracer:    tp.Tracer(tracerName),
		dryRunOut: dryRunOut,
		jitter:    defaultJitter,
	}, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg.clone()
}

// Provider returns the configured provider name.
func (c *Client) Provider() string {
	return c.cfg.Provider
}

// BuildURL joins the base URL, path and sorted query parameters.
func (c *Client) BuildURL(path string, params Params) string {
	u := c.baseURL + path
	if q := params.Encode(); q != "" {
		u += "?" + q
	}
	return u
}

// Do executes a logical request. Retriable statuses and, when enabled,
// HTTP 429 are retried with jittered exponential backoff until the
// configured RetryTimeout is spent.
//
// Do returns nil, nil for dry-run requests and for API errors swallowed by
// SkipAPIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("httpclient: nil request")
	}

	body, err := req.encode()
	if err != nil {
		return nil, err
	}
	fullURL := c.BuildURL(req.Path, req.Params)

	if req.DryRun {
		return nil, c.writeDryRun(fullURL, req, body)
	}

	ctx = tracing.ToContext(ctx, tracing.FromContext(ctx))
	ctx, span := c.tracer.Start(ctx, "routekit.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("routekit.provider", c.cfg.Provider),
			attribute.String("http.request.method", body.method),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	start := time.Now()
	resp, attempts, err := c.execute(ctx, req, fullURL, body)
	recordDuration(c.cfg.Provider, time.Since(start))

	span.SetAttributes(attribute.Int("routekit.attempts", attempts))
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

// execute is the retry loop. It returns the number of attempts made.
func (c *Client) execute(ctx context.Context, req *Request, fullURL string, body encodedBody) (*Response, int, error) {
	operation := body.method + " " + req.Path
	logger := log.WithRequestID(log.WithProvider(c.logger, c.cfg.Provider), tracing.FromContext(ctx).String())

	start := time.Now()
	var lastErr error

	for retry := 0; ; retry++ {
		elapsed := time.Since(start)
		if c.policy.Exhausted(elapsed) {
			return nil, retry, &routeerrors.TimeoutError{
				Operation: operation,
				Duration:  elapsed,
				Attempts:  retry,
				Cause:     lastErr,
			}
		}

		if retry > 0 {
			if err := sleepContext(ctx, c.policy.Delay(retry, c.jitter())); err != nil {
				return nil, retry, err
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, retry, err
			}
		}

		status, header, data, err := c.attempt(ctx, req, fullURL, body)
		recordAttempt(c.cfg.Provider, status)
		if err != nil {
			switch {
			case errors.Is(err, context.Canceled):
				return nil, retry + 1, err
			case isTimeout(err):
				return nil, retry + 1, &routeerrors.TimeoutError{
					Operation: operation,
					Duration:  time.Since(start),
					Attempts:  retry + 1,
					Cause:     err,
				}
			default:
				return nil, retry + 1, &routeerrors.RouterError{
					Provider: c.cfg.Provider,
					Message:  err.Error(),
					Cause:    err,
				}
			}
		}

		if c.policy.Retriable(status) {
			lastErr = statusError(c.cfg.Provider, status, data)
			recordRetry(c.cfg.Provider, retryReasonStatus)
			logger.Warn("retriable status, retrying",
				"status", status,
				"attempt", retry+1,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			continue
		}

		err = classifyResponse(c.cfg.Provider, status, data)
		if err == nil && req.Check != nil {
			err = req.Check(data)
		}

		var limitErr *routeerrors.OverQueryLimitError
		if errors.As(err, &limitErr) && c.policy.RetryOverQueryLimit {
			lastErr = err
			recordRetry(c.cfg.Provider, retryReasonOverQueryLimit)
			logger.Warn("rate limit exceeded, retrying",
				"status", status,
				"attempt", retry+1,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			continue
		}

		var apiErr *routeerrors.RouterAPIError
		if errors.As(err, &apiErr) && c.cfg.SkipAPIError {
			logger.Warn("skipping api error", "status", status, "error", apiErr.Error())
			return nil, retry + 1, nil
		}

		if err != nil {
			return nil, retry + 1, err
		}

		return &Response{
			StatusCode: status,
			Header:     header,
			Body:       data,
			Attempts:   retry + 1,
			Duration:   time.Since(start),
		}, retry + 1, nil
	}
}

// attempt performs one HTTP exchange. status is 0 when no response was
// received.
func (c *Client) attempt(ctx context.Context, req *Request, fullURL string, body encodedBody) (int, http.Header, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, body.method, fullURL, body.reader())
	if err != nil {
		return 0, nil, nil, fmt.Errorf("create request: %w", err)
	}

	if body.contentType != "" {
		httpReq.Header.Set("Content-Type", body.contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read response: %w", err)
	}

	return httpResp.StatusCode, httpResp.Header, data, nil
}
