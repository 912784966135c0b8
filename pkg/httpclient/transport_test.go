package httpclient

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tombee/routekit/internal/tracing"
)

func testTransport(t *testing.T, logger *slog.Logger) *loggingTransport {
	t.Helper()
	cfg := DefaultConfig("valhalla", "https://valhalla.example")
	cfg.UserAgent = "test-agent/1.0"
	cfg.Headers = map[string]string{"X-Client": "routekit"}
	return newLoggingTransport(http.DefaultTransport, cfg, logger)
}

func TestLoggingTransport_SetsUserAgent(t *testing.T) {
	var receivedUserAgent, receivedClient string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUserAgent = r.Header.Get("User-Agent")
		receivedClient = r.Header.Get("X-Client")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := testTransport(t, nil)

	req, err := http.NewRequest("GET", server.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if receivedUserAgent != "test-agent/1.0" {
		t.Errorf("expected User-Agent %q, got %q", "test-agent/1.0", receivedUserAgent)
	}
	if receivedClient != "routekit" {
		t.Errorf("expected X-Client %q, got %q", "routekit", receivedClient)
	}

	// The caller's request must not be modified.
	if req.Header.Get("User-Agent") != "" {
		t.Errorf("original request was modified")
	}
}

func TestLoggingTransport_PreservesExistingUserAgent(t *testing.T) {
	var receivedUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := testTransport(t, nil)

	req, err := http.NewRequest("GET", server.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", "custom-agent/2.0")

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if receivedUserAgent != "custom-agent/2.0" {
		t.Errorf("expected User-Agent %q, got %q", "custom-agent/2.0", receivedUserAgent)
	}
}

func TestLoggingTransport_InjectsRequestID(t *testing.T) {
	var receivedRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedRequestID = r.Header.Get(tracing.HeaderRequestID)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := testTransport(t, nil)

	corrID := tracing.NewCorrelationID()
	ctx := tracing.ToContext(context.Background(), corrID)
	req, err := http.NewRequestWithContext(ctx, "GET", server.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if receivedRequestID != corrID.String() {
		t.Errorf("expected request ID %q, got %q", corrID.String(), receivedRequestID)
	}
}

func TestLoggingTransport_NoRequestIDWhenNotInContext(t *testing.T) {
	var receivedRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedRequestID = r.Header.Get(tracing.HeaderRequestID)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := testTransport(t, nil)

	req, err := http.NewRequest("GET", server.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if receivedRequestID != "" {
		t.Errorf("expected no request ID, got %q", receivedRequestID)
	}
}

func TestLoggingTransport_LogsSanitizedURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	transport := testTransport(t, logger)

	req, err := http.NewRequest("GET", server.URL+"/route?api_key=supersecret&costing=auto", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	out := buf.String()
	if strings.Contains(out, "supersecret") {
		t.Errorf("log leaked api key: %s", out)
	}
	if !strings.Contains(out, `"level":"WARN"`) {
		t.Errorf("expected warn level for 400 response: %s", out)
	}
	if !strings.Contains(out, `"provider":"valhalla"`) {
		t.Errorf("expected provider field: %s", out)
	}
	if !strings.Contains(out, "costing=auto") {
		t.Errorf("expected non-sensitive params to be kept: %s", out)
	}
}
