package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		retry    int
		jitter   float64
		expected time.Duration
	}{
		{retry: 0, jitter: 1, expected: 0},
		{retry: 1, jitter: 1, expected: 500 * time.Millisecond},
		{retry: 2, jitter: 1, expected: 750 * time.Millisecond},
		{retry: 3, jitter: 1, expected: 1125 * time.Millisecond},
		{retry: 1, jitter: 0.5, expected: 250 * time.Millisecond},
		{retry: 2, jitter: 1.5, expected: 1125 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("retry_%d_jitter_%v", tt.retry, tt.jitter), func(t *testing.T) {
			assert.Equal(t, tt.expected, Backoff(tt.retry, tt.jitter))
		})
	}
}

func TestDefaultJitterRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		j := defaultJitter()
		require.GreaterOrEqual(t, j, 0.5)
		require.Less(t, j, 1.5)
	}
}

func TestRetryPolicy(t *testing.T) {
	policy := policyFromConfig(DefaultConfig("osrm", "https://router.project-osrm.org"))

	assert.True(t, policy.Retriable(http.StatusServiceUnavailable))
	assert.False(t, policy.Retriable(http.StatusInternalServerError))
	assert.False(t, policy.Retriable(http.StatusTooManyRequests))
	assert.True(t, policy.RetryOverQueryLimit)

	assert.False(t, policy.Exhausted(60*time.Second))
	assert.True(t, policy.Exhausted(60*time.Second+time.Nanosecond))
}

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType string
	}{
		{name: "ok", status: 200, body: `{"routes":[]}`},
		{name: "invalid json on 200", status: 200, body: `not json`, wantType: routeerrors.TypeJSONParse},
		{name: "invalid json on 500", status: 500, body: `<html>`, wantType: routeerrors.TypeJSONParse},
		{name: "empty body", status: 200, body: ``, wantType: routeerrors.TypeJSONParse},
		{name: "over query limit", status: 429, body: `{"error":"limit"}`, wantType: routeerrors.TypeOverQueryLimit},
		{name: "bad request", status: 400, body: `{"error":"bad"}`, wantType: routeerrors.TypeAPI},
		{name: "forbidden", status: 403, body: `{"error":"key"}`, wantType: routeerrors.TypeAPI},
		{name: "server error", status: 500, body: `{"error":"boom"}`, wantType: routeerrors.TypeServer},
		{name: "gateway", status: 502, body: `{}`, wantType: routeerrors.TypeServer},
		{name: "redirect", status: 302, body: `{}`, wantType: routeerrors.TypeRouter},
		{name: "no content", status: 204, body: `{}`, wantType: routeerrors.TypeRouter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyResponse(tt.status, []byte(tt.body))
			if tt.wantType == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var classifier routeerrors.ErrorClassifier
			require.True(t, errors.As(err, &classifier))
			assert.Equal(t, tt.wantType, classifier.ErrorType())
		})
	}
}

func TestClassifyResponse_KeepsBody(t *testing.T) {
	err := classifyResponse("ors", 400, []byte(`{"error":{"code":2003,"message":"Parameter 'profile' has incorrect value"}}`))

	var apiErr *routeerrors.RouterAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ors", apiErr.Provider)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "incorrect value")
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, isTimeout(context.DeadlineExceeded))
	assert.True(t, isTimeout(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.True(t, isTimeout(&net.DNSError{IsTimeout: true}))
	assert.False(t, isTimeout(&net.DNSError{IsNotFound: true}))
	assert.False(t, isTimeout(context.Canceled))
	assert.False(t, isTimeout(errors.New("connection refused")))
}

func TestSleepContext(t *testing.T) {
	t.Run("sleeps", func(t *testing.T) {
		start := time.Now()
		require.NoError(t, sleepContext(context.Background(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := sleepContext(ctx, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("zero duration", func(t *testing.T) {
		assert.NoError(t, sleepContext(context.Background(), 0))
	})
}
