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

package shared

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/config"
	"github.com/tombee/routekit/internal/log"
	"github.com/tombee/routekit/internal/secrets"
	"github.com/tombee/routekit/internal/tracing"
	"github.com/tombee/routekit/pkg/routers"
	"github.com/tombee/routekit/pkg/routing"
)

// loadedConfig caches the configuration for the current invocation.
var loadedConfig *config.Config

// NewResolver builds the secret resolver. The encrypted credentials file
// lives next to the config file. Tests replace it to avoid the OS keychain.
var NewResolver = func() *secrets.Resolver {
	var dir string
	if path, err := ConfigPath(); err == nil {
		dir = filepath.Dir(path)
	}
	return secrets.NewDefaultResolver(dir)
}

// ConfigPath returns --config or the XDG default path.
func ConfigPath() (string, error) {
	if p := GetConfigPath(); p != "" {
		return p, nil
	}
	return config.ConfigPath()
}

// LoadConfig loads the configuration once per invocation.
func LoadConfig() (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	loadedConfig = cfg
	return cfg, nil
}

// Runtime is what a routing command needs once flags are parsed.
type Runtime struct {
	Config   *config.Config
	Provider string
	Settings config.ProviderSettings
	Router   routing.Router
	Logger   *slog.Logger
}

// NewRuntime resolves the provider, its credentials and client settings,
// and builds the router. Dry-run output goes to the command's stdout.
func NewRuntime(cmd *cobra.Command) (*Runtime, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	provider := GetProvider()
	if provider == "" {
		provider = cfg.DefaultProvider
	}
	provider = routers.Default().Canonical(provider)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pc, err := cfg.ProviderConfig(ctx, provider, NewResolver())
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	pc.Client.Logger = logger
	pc.Client.DryRunOutput = cmd.OutOrStdout()

	router, err := routers.New(provider, pc)
	if err != nil {
		return nil, err
	}

	settings, _ := cfg.Provider(provider)
	return &Runtime{
		Config:   cfg,
		Provider: provider,
		Settings: settings,
		Router:   router,
		Logger:   logger,
	}, nil
}

// Profile returns flagValue, falling back to the provider's configured
// profile. Empty selects the adapter default.
func (r *Runtime) Profile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return r.Settings.Profile
}

// Run executes one routing operation under a fresh request ID with
// start/end logging.
func (r *Runtime) Run(ctx context.Context, operation string, metadata map[string]any, fn func(ctx context.Context) error) error {
	id := tracing.NewCorrelationID()
	ctx = tracing.ToContext(ctx, id)

	return log.RunOperation(ctx, r.Logger, log.Operation{
		Name:      operation,
		Provider:  r.Provider,
		RequestID: id.String(),
		Metadata:  metadata,
	}, fn)
}
