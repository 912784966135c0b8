package httpclient

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("osrm", "https://router.project-osrm.org")

	if cfg.Timeout != 60*time.Second {
		t.Errorf("expected timeout 60s, got %v", cfg.Timeout)
	}

	if cfg.RetryTimeout != 60*time.Second {
		t.Errorf("expected retry timeout 60s, got %v", cfg.RetryTimeout)
	}

	if len(cfg.RetriableStatuses) != 1 || cfg.RetriableStatuses[0] != http.StatusServiceUnavailable {
		t.Errorf("expected retriable statuses [503], got %v", cfg.RetriableStatuses)
	}

	if !cfg.RetryOverQueryLimit {
		t.Error("expected RetryOverQueryLimit to be true by default")
	}

	if cfg.SkipAPIError {
		t.Error("expected SkipAPIError to be false by default")
	}

	if !strings.HasPrefix(cfg.UserAgent, "routekit/") {
		t.Errorf("unexpected user agent %q", cfg.UserAgent)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:    "missing base url",
			modify:  func(c *Config) { c.BaseURL = "" },
			wantErr: "base_url is required",
		},
		{
			name:    "unsupported scheme",
			modify:  func(c *Config) { c.BaseURL = "ftp://router.example" },
			wantErr: "must use http or https",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Timeout = 0 },
			wantErr: "timeout must be > 0",
		},
		{
			name:    "negative retry timeout",
			modify:  func(c *Config) { c.RetryTimeout = -time.Second },
			wantErr: "retry_timeout must be > 0",
		},
		{
			name:    "bogus retriable status",
			modify:  func(c *Config) { c.RetriableStatuses = []int{503, 42} },
			wantErr: "retriable status 42",
		},
		{
			name:    "empty user agent",
			modify:  func(c *Config) { c.UserAgent = "" },
			wantErr: "user_agent is required",
		},
		{
			name:    "negative rate",
			modify:  func(c *Config) { c.RequestsPerSecond = -1 },
			wantErr: "requests_per_second must be >= 0",
		},
		{
			name:    "negative burst",
			modify:  func(c *Config) { c.Burst = -1 },
			wantErr: "burst must be >= 0",
		},
		{
			name:    "bad proxy",
			modify:  func(c *Config) { c.ProxyURL = "http://[::1" },
			wantErr: "proxy_url",
		},
		{
			name:   "empty retriable set",
			modify: func(c *Config) { c.RetriableStatuses = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("osrm", "https://router.project-osrm.org")
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
