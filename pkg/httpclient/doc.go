// Package httpclient is the request core shared by every routing provider
// adapter in routekit.
//
// A Client owns one connection-reusing http.Client and turns a logical
// Request into one or more HTTP attempts:
//   - Query parameters are encoded in sorted key order
//   - Bodies are JSON or form-encoded; GET is used when there is none
//   - Statuses in RetriableStatuses (503 by default) are retried
//   - HTTP 429 is retried when RetryOverQueryLimit is set
//   - Retries stop once RetryTimeout has elapsed, failing with TimeoutError
//
// # Usage
//
//	cfg := httpclient.DefaultConfig("valhalla", "https://valhalla1.openstreetmap.de")
//	cfg.RetryTimeout = 10 * time.Second
//	client, err := httpclient.New(cfg)
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Do(ctx, &httpclient.Request{
//	    Path: "/route",
//	    JSON: body,
//	})
//
// # Retry Behavior
//
// The delay before retry n is 0.5s * 1.5^(n-1), multiplied by a uniform
// jitter in [0.5, 1.5). The elapsed time is checked before each attempt, so
// a request that keeps failing ends with a TimeoutError some time after
// RetryTimeout, never before it.
//
// Other failures are classified once and returned: invalid JSON bodies
// (JSONParseError), remaining 4xx (RouterAPIError), 5xx
// (RouterServerError) and anything else that is not 200 (RouterError).
// With SkipAPIError a RouterAPIError is logged and Do returns nil, nil.
//
// # Dry Run
//
// Request.DryRun prints the method, URL and body to Config.DryRunOutput and
// returns nil, nil without any network I/O.
//
// # Observability
//
// All attempts emit structured logs via log/slog with sanitized URLs
// (api_key, key, access_token and similar parameters are redacted). Every
// logical request gets an X-Request-ID, an OpenTelemetry span and
// Prometheus counters for attempts, retries and duration.
package httpclient
