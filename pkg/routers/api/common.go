// Package api provides the shared plumbing of routekit's provider adapters.
package api

import (
	"github.com/tombee/routekit/pkg/httpclient"
)

// ProviderConfig holds configuration for a routing provider adapter.
type ProviderConfig struct {
	// APIKey authenticates against the provider. How it is sent depends on
	// the provider (header, "key", "api_key" or "access_token" parameter).
	APIKey string

	// Client configures the HTTP client. Nil selects
	// httpclient.DefaultConfig with the adapter's default base URL. Empty
	// Provider and BaseURL fields are filled in by the adapter.
	Client *httpclient.Config
}

// Bool returns a pointer to b, for optional option fields.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
