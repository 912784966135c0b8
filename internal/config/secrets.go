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

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/tombee/routekit/internal/log"
	"github.com/tombee/routekit/internal/secrets"
	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/routers/api"
)

// api_key values that point at a key stored by "config set-key".
const (
	// KeyringRef selects the OS keychain.
	KeyringRef = "keyring"

	// FileRef selects the encrypted credentials file.
	FileRef = "file"
)

// storedRefBackends maps stored-key references to secret backend names.
var storedRefBackends = map[string]string{
	KeyringRef: "keychain",
	FileRef:    "file",
}

// StoredRef returns the api_key reference for a key stored in the named
// secret backend.
func StoredRef(backend string) (string, bool) {
	for ref, name := range storedRefBackends {
		if name == backend {
			return ref, true
		}
	}
	return "", false
}

// IsStoredRef reports whether value points at a stored key rather than
// holding one.
func IsStoredRef(value string) bool {
	_, ok := storedRefBackends[value]
	return ok
}

// envRefPattern matches ${ENV_VAR} references.
var envRefPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// ResolveAPIKey returns the API key for provider. Resolution order:
//  1. api_key "keyring" or "file": the entry written by "config set-key"
//  2. api_key "${VAR}": the named environment variable
//  3. api_key literal
//  4. api_key_env: the named environment variable
//  5. the resolver's backends (ROUTEKIT_SECRET_*, <PROVIDER>_API_KEY, keychain, file)
//
// An empty key with a nil error means none is configured; keyless
// providers such as OSRM work without one.
func (c *Config) ResolveAPIKey(ctx context.Context, provider string, resolver *secrets.Resolver) (string, error) {
	name := canonical(provider)
	p, _ := c.Provider(name)
	keyPath := "providers." + name + ".api_key"

	switch {
	case IsStoredRef(p.APIKey):
		backend := storedRefBackends[p.APIKey]
		if resolver == nil {
			return "", &routeerrors.ConfigError{Key: keyPath, Reason: backend + " is not available"}
		}
		value, err := resolver.GetFrom(ctx, secrets.ProviderKey(name), backend)
		if err != nil {
			return "", &routeerrors.ConfigError{
				Key:    keyPath,
				Reason: "no key stored in " + backend + "; run \"routekit config set-key " + name + "\"",
				Cause:  err,
			}
		}
		return value, nil

	case envRefPattern.MatchString(p.APIKey):
		envVar := envRefPattern.FindStringSubmatch(p.APIKey)[1]
		value := os.Getenv(envVar)
		if value == "" {
			return "", &routeerrors.ConfigError{
				Key:    keyPath,
				Reason: fmt.Sprintf("environment variable %s is not set", envVar),
			}
		}
		return value, nil

	case p.APIKey != "":
		return p.APIKey, nil

	case p.APIKeyEnv != "":
		value := os.Getenv(p.APIKeyEnv)
		if value == "" {
			return "", &routeerrors.ConfigError{
				Key:    "providers." + name + ".api_key_env",
				Reason: fmt.Sprintf("environment variable %s is not set", p.APIKeyEnv),
			}
		}
		return value, nil
	}

	if resolver == nil {
		return "", nil
	}
	value, err := resolver.Get(ctx, secrets.ProviderKey(name))
	if err != nil {
		if errors.Is(err, secrets.ErrSecretNotFound) || errors.Is(err, secrets.ErrBackendUnavailable) {
			return "", nil
		}
		return "", &routeerrors.ConfigError{Key: keyPath, Reason: "failed to resolve secret", Cause: err}
	}
	return value, nil
}

// ProviderConfig builds the adapter configuration for provider.
func (c *Config) ProviderConfig(ctx context.Context, provider string, resolver *secrets.Resolver) (api.ProviderConfig, error) {
	key, err := c.ResolveAPIKey(ctx, provider, resolver)
	if err != nil {
		return api.ProviderConfig{}, err
	}
	client := c.ClientConfig(provider)
	return api.ProviderConfig{APIKey: key, Client: &client}, nil
}

// Redacted returns a copy safe to print: literal API keys are masked,
// references ("keyring", "file", ${VAR}) are kept as written.
func (c *Config) Redacted() *Config {
	out := *c
	out.Providers = make(map[string]ProviderSettings, len(c.Providers))
	for name, p := range c.Providers {
		if p.APIKey != "" && !IsStoredRef(p.APIKey) && !envRefPattern.MatchString(p.APIKey) {
			p.APIKey = log.SanitizeAPIKey(p.APIKey)
		}
		out.Providers[name] = p
	}
	return &out
}
