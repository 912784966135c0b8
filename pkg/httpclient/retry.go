package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"net"
	"net/http"
	"time"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

const (
	// backoffBase is the delay before the first retry, before jitter.
	backoffBase = 500 * time.Millisecond

	// backoffFactor is the growth factor between consecutive retries.
	backoffFactor = 1.5
)

// RetryPolicy decides which responses are retried and how long to wait
// between attempts.
type RetryPolicy struct {
	// Timeout is the elapsed-time budget of one logical request.
	Timeout time.Duration

	// RetriableStatuses are retried without looking at the body.
	RetriableStatuses []int

	// RetryOverQueryLimit retries HTTP 429.
	RetryOverQueryLimit bool
}

// policyFromConfig extracts the retry policy of a client configuration.
func policyFromConfig(cfg Config) RetryPolicy {
	return RetryPolicy{
		Timeout:             cfg.RetryTimeout,
		RetriableStatuses:   cfg.RetriableStatuses,
		RetryOverQueryLimit: cfg.RetryOverQueryLimit,
	}
}

// Retriable reports whether status is in the retriable set.
func (p RetryPolicy) Retriable(status int) bool {
	for _, code := range p.RetriableStatuses {
		if code == status {
			return true
		}
	}
	return false
}

// Exhausted reports whether elapsed has gone past the budget.
func (p RetryPolicy) Exhausted(elapsed time.Duration) bool {
	return elapsed > p.Timeout
}

// Delay is the sleep before the given retry (1 for the first retry).
func (p RetryPolicy) Delay(retry int, jitter float64) time.Duration {
	return Backoff(retry, jitter)
}

// Backoff computes 0.5s * 1.5^(retry-1) * jitter. jitter is expected in
// [0.5, 1.5). Retry 0 is the initial attempt and never waits.
func Backoff(retry int, jitter float64) time.Duration {
	if retry <= 0 {
		return 0
	}
	delay := float64(backoffBase) * math.Pow(backoffFactor, float64(retry-1)) * jitter
	return time.Duration(delay)
}

// defaultJitter draws a uniform value in [0.5, 1.5).
func defaultJitter() float64 {
	return rand.Float64() + 0.5
}

// ClassifyResponse maps a status and body to the error taxonomy. It
// returns nil only for HTTP 200 with a valid JSON body.
func ClassifyResponse(status int, body []byte) error {
	return classifyResponse("", status, body)
}

func classifyResponse(provider string, status int, body []byte) error {
	if !json.Valid(body) {
		var cause error
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			cause = err
		}
		return &routeerrors.JSONParseError{StatusCode: status, Body: string(body), Cause: cause}
	}

	message := string(body)
	switch {
	case status == http.StatusTooManyRequests:
		return &routeerrors.OverQueryLimitError{Provider: provider, StatusCode: status, Message: message}
	case status >= 400 && status < 500:
		return &routeerrors.RouterAPIError{Provider: provider, StatusCode: status, Message: message}
	case status >= 500 && status < 600:
		return &routeerrors.RouterServerError{Provider: provider, StatusCode: status, Message: message}
	case status != http.StatusOK:
		return &routeerrors.RouterError{Provider: provider, StatusCode: status, Message: message}
	}
	return nil
}

// statusError describes a retried status for the eventual TimeoutError
// without requiring a JSON body.
func statusError(provider string, status int, body []byte) error {
	message := string(body)
	if status >= 500 {
		return &routeerrors.RouterServerError{Provider: provider, StatusCode: status, Message: message}
	}
	return &routeerrors.RouterError{Provider: provider, StatusCode: status, Message: message}
}

// isTimeout reports whether a transport error is a timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
