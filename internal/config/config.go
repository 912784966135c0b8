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

// Package config loads the routekit CLI configuration file and turns it
// into per-provider client configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers"
)

// Config is the top-level configuration for the routekit CLI.
type Config struct {
	// DefaultProvider is used when no --provider flag is given.
	DefaultProvider string `yaml:"default_provider,omitempty"`

	// Defaults apply to every provider unless overridden.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// Providers holds per-provider settings keyed by provider name.
	Providers map[string]ProviderSettings `yaml:"providers,omitempty"`

	// Log configures CLI logging. Flags and LOG_* variables take precedence.
	Log LogConfig `yaml:"log,omitempty"`
}

// Defaults are the HTTP client settings shared by all providers. Zero
// values inherit from the level above (provider -> defaults -> library).
type Defaults struct {
	Timeout             time.Duration `yaml:"timeout,omitempty"`
	RetryTimeout        time.Duration `yaml:"retry_timeout,omitempty"`
	UserAgent           string        `yaml:"user_agent,omitempty"`
	RetryOverQueryLimit *bool         `yaml:"retry_over_query_limit,omitempty"`
	SkipAPIError        *bool         `yaml:"skip_api_error,omitempty"`
	RequestsPerSecond   float64       `yaml:"requests_per_second,omitempty"`
	Burst               int           `yaml:"burst,omitempty"`
	RetriableStatuses   []int         `yaml:"retriable_statuses,omitempty"`
	ProxyURL            string        `yaml:"proxy_url,omitempty"`
}

// ProviderSettings configures one routing provider.
type ProviderSettings struct {
	// BaseURL overrides the provider's public endpoint, e.g. for a
	// self-hosted OSRM or Valhalla instance.
	BaseURL string `yaml:"base_url,omitempty"`

	// APIKey is a literal key, a ${ENV_VAR} reference, or "keyring" or
	// "file" for a key stored by "routekit config set-key".
	APIKey string `yaml:"api_key,omitempty"`

	// APIKeyEnv names an environment variable holding the key.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`

	// Profile is the default routing profile for CLI commands.
	Profile string `yaml:"profile,omitempty"`

	// Headers are sent with every request to this provider.
	Headers map[string]string `yaml:"headers,omitempty"`

	Defaults `yaml:",inline"`
}

// LogConfig configures CLI logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns a configuration with the library defaults filled in.
func Default() *Config {
	lib := httpclient.DefaultConfig("", "")
	retry := lib.RetryOverQueryLimit
	skip := lib.SkipAPIError

	return &Config{
		DefaultProvider: "osrm",
		Defaults: Defaults{
			Timeout:             lib.Timeout,
			RetryTimeout:        lib.RetryTimeout,
			UserAgent:           lib.UserAgent,
			RetryOverQueryLimit: &retry,
			SkipAPIError:        &skip,
			RetriableStatuses:   lib.RetriableStatuses,
		},
		Providers: map[string]ProviderSettings{},
	}
}

// Load reads the configuration at configPath. A missing file yields the
// defaults, so a fresh install works without running any setup.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.loadFromFile(configPath); err != nil {
			return nil, &routeerrors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", configPath),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, &routeerrors.ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed",
			Cause:  err,
		}
	}

	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

func (c *Config) loadFromFile(path string) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()

	if c.DefaultProvider == "" {
		c.DefaultProvider = def.DefaultProvider
	}
	if c.Defaults.Timeout == 0 {
		c.Defaults.Timeout = def.Defaults.Timeout
	}
	if c.Defaults.RetryTimeout == 0 {
		c.Defaults.RetryTimeout = def.Defaults.RetryTimeout
	}
	if c.Defaults.UserAgent == "" {
		c.Defaults.UserAgent = def.Defaults.UserAgent
	}
	if c.Defaults.RetryOverQueryLimit == nil {
		c.Defaults.RetryOverQueryLimit = def.Defaults.RetryOverQueryLimit
	}
	if c.Defaults.SkipAPIError == nil {
		c.Defaults.SkipAPIError = def.Defaults.SkipAPIError
	}
	if len(c.Defaults.RetriableStatuses) == 0 {
		c.Defaults.RetriableStatuses = def.Defaults.RetriableStatuses
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderSettings{}
	}
}

// loadFromEnv applies ROUTEKIT_* overrides.
func (c *Config) loadFromEnv() {
	if val := os.Getenv("ROUTEKIT_PROVIDER"); val != "" {
		c.DefaultProvider = strings.ToLower(val)
	}
	if val := os.Getenv("ROUTEKIT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.Defaults.Timeout = d
		}
	}
	if val := os.Getenv("ROUTEKIT_RETRY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.Defaults.RetryTimeout = d
		}
	}
	if val := os.Getenv("ROUTEKIT_USER_AGENT"); val != "" {
		c.Defaults.UserAgent = val
	}
	if val := os.Getenv("ROUTEKIT_SKIP_API_ERROR"); val != "" {
		skip := val == "1" || strings.EqualFold(val, "true")
		c.Defaults.SkipAPIError = &skip
	}
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []string

	if c.DefaultProvider != "" && !knownProvider(c.DefaultProvider) {
		errs = append(errs, fmt.Sprintf("default_provider %q is not a known provider (available: %s)",
			c.DefaultProvider, strings.Join(routers.Names(), ", ")))
	}

	errs = append(errs, c.Defaults.validate("defaults")...)

	for name, p := range c.Providers {
		prefix := "providers." + name
		if !knownProvider(name) {
			errs = append(errs, fmt.Sprintf("%s: unknown provider", prefix))
		}
		if p.BaseURL != "" {
			u, err := url.Parse(p.BaseURL)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				errs = append(errs, fmt.Sprintf("%s.base_url %q must be an http or https URL", prefix, p.BaseURL))
			}
		}
		if p.APIKey != "" && p.APIKeyEnv != "" {
			errs = append(errs, fmt.Sprintf("%s: api_key and api_key_env are mutually exclusive", prefix))
		}
		errs = append(errs, p.Defaults.validate(prefix)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (d Defaults) validate(prefix string) []string {
	var errs []string
	if d.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("%s.timeout must be positive, got %v", prefix, d.Timeout))
	}
	if d.RetryTimeout < 0 {
		errs = append(errs, fmt.Sprintf("%s.retry_timeout must be positive, got %v", prefix, d.RetryTimeout))
	}
	if d.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Sprintf("%s.requests_per_second must be >= 0, got %v", prefix, d.RequestsPerSecond))
	}
	if d.Burst < 0 {
		errs = append(errs, fmt.Sprintf("%s.burst must be >= 0, got %d", prefix, d.Burst))
	}
	for _, status := range d.RetriableStatuses {
		if status < 100 || status > 599 {
			errs = append(errs, fmt.Sprintf("%s.retriable_statuses: %d is not an HTTP status", prefix, status))
		}
	}
	if d.ProxyURL != "" {
		if _, err := url.Parse(d.ProxyURL); err != nil {
			errs = append(errs, fmt.Sprintf("%s.proxy_url %q is invalid", prefix, d.ProxyURL))
		}
	}
	return errs
}

func knownProvider(name string) bool {
	_, err := routers.GetRouterByName(name)
	return err == nil
}

// canonical maps aliases such as "openrouteservice" to registry names.
func canonical(name string) string {
	return routers.Default().Canonical(name)
}

// Provider returns the settings for the named provider. Aliases and the
// canonical name both match.
func (c *Config) Provider(name string) (ProviderSettings, bool) {
	if p, ok := c.Providers[name]; ok {
		return p, true
	}
	want := canonical(name)
	for key, p := range c.Providers {
		if canonical(key) == want {
			return p, true
		}
	}
	return ProviderSettings{}, false
}

// SetProvider stores settings under the canonical provider name,
// replacing any entry keyed by an alias.
func (c *Config) SetProvider(name string, p ProviderSettings) {
	if c.Providers == nil {
		c.Providers = map[string]ProviderSettings{}
	}
	want := canonical(name)
	for key := range c.Providers {
		if key != want && canonical(key) == want {
			delete(c.Providers, key)
		}
	}
	c.Providers[want] = p
}

// ClientConfig resolves library defaults, the defaults section and the
// provider's overrides into an httpclient.Config. BaseURL is left empty
// when not configured so the adapter's public endpoint applies.
func (c *Config) ClientConfig(provider string) httpclient.Config {
	name := canonical(provider)
	cfg := httpclient.DefaultConfig(name, "")
	c.Defaults.apply(&cfg)

	if p, ok := c.Provider(name); ok {
		cfg.BaseURL = p.BaseURL
		p.Defaults.apply(&cfg)
		if len(p.Headers) > 0 {
			cfg.Headers = make(map[string]string, len(p.Headers))
			for k, v := range p.Headers {
				cfg.Headers[k] = v
			}
		}
	}

	return cfg
}

func (d Defaults) apply(cfg *httpclient.Config) {
	if d.Timeout > 0 {
		cfg.Timeout = d.Timeout
	}
	if d.RetryTimeout > 0 {
		cfg.RetryTimeout = d.RetryTimeout
	}
	if d.UserAgent != "" {
		cfg.UserAgent = d.UserAgent
	}
	if d.RetryOverQueryLimit != nil {
		cfg.RetryOverQueryLimit = *d.RetryOverQueryLimit
	}
	if d.SkipAPIError != nil {
		cfg.SkipAPIError = *d.SkipAPIError
	}
	if d.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = d.RequestsPerSecond
	}
	if d.Burst > 0 {
		cfg.Burst = d.Burst
	}
	if len(d.RetriableStatuses) > 0 {
		cfg.RetriableStatuses = append([]int(nil), d.RetriableStatuses...)
	}
	if d.ProxyURL != "" {
		cfg.ProxyURL = d.ProxyURL
	}
}
