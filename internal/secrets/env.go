// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const (
	// EnvBackendPriority is the priority for environment variable backend.
	// This is the highest priority to allow environment overrides.
	EnvBackendPriority = 100

	// envSecretPrefix is the prefix for routekit-specific secret environment variables.
	envSecretPrefix = "ROUTEKIT_SECRET_"
)

// providerEnvAliases are the variable names each service documents for its
// credentials, checked after <PROVIDER>_API_KEY.
var providerEnvAliases = map[string][]string{
	"google":      {"GOOGLE_MAPS_API_KEY"},
	"mapbox":      {"MAPBOX_ACCESS_TOKEN"},
	"ors":         {"OPENROUTESERVICE_API_KEY"},
	"graphhopper": {"GH_API_KEY"},
}

// EnvBackend provides read-only access to secrets via environment variables.
// It supports multiple naming conventions:
//  1. ROUTEKIT_SECRET_<KEY> (normalized, e.g., ROUTEKIT_SECRET_PROVIDERS_ORS_API_KEY)
//  2. Provider-specific variables (e.g., ORS_API_KEY, MAPBOX_ACCESS_TOKEN)
type EnvBackend struct{}

// NewEnvBackend creates a new environment variable backend.
func NewEnvBackend() *EnvBackend {
	return &EnvBackend{}
}

// Name returns the backend identifier.
func (e *EnvBackend) Name() string {
	return "env"
}

// Get retrieves a secret from environment variables.
func (e *EnvBackend) Get(ctx context.Context, key string) (string, error) {
	if value := os.Getenv(e.normalizeKey(key)); value != "" {
		return value, nil
	}

	for _, alias := range e.providerAliases(key) {
		if value := os.Getenv(alias); value != "" {
			return value, nil
		}
	}

	return "", fmt.Errorf("%w: environment variable not set", ErrSecretNotFound)
}

// Set returns ErrReadOnlyBackend as environment backend is read-only.
func (e *EnvBackend) Set(ctx context.Context, key string, value string) error {
	return ErrReadOnlyBackend
}

// Delete returns ErrReadOnlyBackend as environment backend is read-only.
func (e *EnvBackend) Delete(ctx context.Context, key string) error {
	return ErrReadOnlyBackend
}

// Available returns true as environment variables are always available.
func (e *EnvBackend) Available() bool {
	return true
}

// Priority returns the backend priority (highest).
func (e *EnvBackend) Priority() int {
	return EnvBackendPriority
}

// ReadOnly returns true as environment backend is read-only.
func (e *EnvBackend) ReadOnly() bool {
	return true
}

// normalizeKey converts a secret key to an environment variable name.
// Example: "providers/ors/api_key" -> "ROUTEKIT_SECRET_PROVIDERS_ORS_API_KEY"
func (e *EnvBackend) normalizeKey(key string) string {
	normalized := strings.ToUpper(strings.ReplaceAll(key, "/", "_"))
	return envSecretPrefix + normalized
}

// providerAliases returns the provider-specific variable names for an
// API key secret.
// Example: "providers/ors/api_key" -> ["ORS_API_KEY", "OPENROUTESERVICE_API_KEY"]
func (e *EnvBackend) providerAliases(key string) []string {
	provider, ok := ParseProviderKey(key)
	if !ok {
		return nil
	}
	aliases := []string{strings.ToUpper(provider) + "_API_KEY"}
	return append(aliases, providerEnvAliases[provider]...)
}
