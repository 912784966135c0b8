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
	"errors"
	"strings"
)

var (
	// ErrSecretNotFound is returned when a secret key does not exist in the backend.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrBackendUnavailable is returned when a backend cannot be used in the current environment.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrReadOnlyBackend is returned when attempting to modify a read-only backend.
	ErrReadOnlyBackend = errors.New("backend is read-only")
)

// SecretBackend stores provider credentials. Backends are queried in
// priority order by the Resolver.
type SecretBackend interface {
	// Name returns the backend identifier ("env", "keychain", "file").
	Name() string

	// Get retrieves a secret by key. Returns ErrSecretNotFound if not present.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a secret. Returns ErrReadOnlyBackend if not supported.
	Set(ctx context.Context, key string, value string) error

	// Delete removes a secret. Returns ErrSecretNotFound if not present.
	Delete(ctx context.Context, key string) error

	// Available returns true if this backend is usable in the current environment.
	Available() bool

	// Priority returns the resolution priority (higher = checked first).
	Priority() int
}

// ReadOnlyBackend is a marker interface for backends that don't support writes.
type ReadOnlyBackend interface {
	SecretBackend
	ReadOnly() bool
}

const (
	providerKeyPrefix = "providers/"
	providerKeySuffix = "/api_key"
)

// ProviderKey returns the secret key holding a provider's API key.
func ProviderKey(provider string) string {
	return providerKeyPrefix + provider + providerKeySuffix
}

// ParseProviderKey extracts the provider name from a key built by
// ProviderKey.
func ParseProviderKey(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, providerKeyPrefix)
	if !ok {
		return "", false
	}
	provider, ok := strings.CutSuffix(rest, providerKeySuffix)
	if !ok || provider == "" || strings.Contains(provider, "/") {
		return "", false
	}
	return provider, true
}

// storageAccount is the name a key is stored under by the keychain and
// file backends. Provider keys are stored under the bare provider name.
func storageAccount(key string) string {
	if provider, ok := ParseProviderKey(key); ok {
		return provider
	}
	return key
}
