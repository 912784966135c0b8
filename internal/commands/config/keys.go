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
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tombee/routekit/internal/commands/completion"
	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/internal/config"
	"github.com/tombee/routekit/internal/secrets"
	"github.com/tombee/routekit/pkg/routers"
)

func newSetKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <provider>",
		Short: "Store a provider API key in the OS keychain",
		Long: `Store a provider API key in the OS keychain and point the provider's
api_key at it. The key is read from stdin, without echo on a terminal.

Without a keychain service (containers, CI, headless servers) the key is
written to credentials.enc next to the config file, encrypted with
ROUTEKIT_MASTER_KEY or the contents of master.key.`,
		Example: `  routekit config set-key ors
  echo "$MAPBOX_TOKEN" | routekit config set-key mapbox`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.CompleteProviderNames,
		RunE:              runSetKey,
	}
}

func newDeleteKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key <provider>",
		Short: "Remove a stored provider API key",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.CompleteProviderNames,
		RunE:              runDeleteKey,
	}
}

// providerArg validates and canonicalizes a provider argument.
func providerArg(arg string) (string, error) {
	if _, err := routers.GetRouterByName(arg); err != nil {
		return "", shared.NewUsageError("unknown provider", err)
	}
	return routers.Default().Canonical(arg), nil
}

// readKey reads the key from stdin, hiding input on a terminal.
func readKey(cmd *cobra.Command, provider string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(cmd.ErrOrStderr(), "API key for %s: ", provider)
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", shared.NewUsageError("no key provided on stdin", nil)
	}
	return strings.TrimSpace(line), nil
}

func runSetKey(cmd *cobra.Command, args []string) error {
	provider, err := providerArg(args[0])
	if err != nil {
		return err
	}

	key, err := readKey(cmd, provider)
	if err != nil {
		return err
	}
	if key == "" {
		return shared.NewUsageError("API key must not be empty", nil)
	}

	resolver := shared.NewResolver()
	backend, err := resolver.Set(cmd.Context(), secrets.ProviderKey(provider), key, "")
	if errors.Is(err, secrets.ErrBackendUnavailable) {
		return fmt.Errorf("no keychain service is available; set %s to store keys in an encrypted file: %w", secrets.MasterKeyEnv, err)
	}
	if err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}
	ref, ok := config.StoredRef(backend)
	if !ok {
		return fmt.Errorf("failed to store key: backend %q cannot be referenced from the config", backend)
	}

	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	settings, _ := cfg.Provider(provider)
	settings.APIKey = ref
	settings.APIKeyEnv = ""
	cfg.SetProvider(provider, settings)

	path, err := shared.ConfigPath()
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s in the %s backend\n", provider, backend)
	return nil
}

func runDeleteKey(cmd *cobra.Command, args []string) error {
	provider, err := providerArg(args[0])
	if err != nil {
		return err
	}

	resolver := shared.NewResolver()
	if err := resolver.Delete(cmd.Context(), secrets.ProviderKey(provider)); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	if settings, ok := cfg.Provider(provider); ok && config.IsStoredRef(settings.APIKey) {
		settings.APIKey = ""
		cfg.SetProvider(provider, settings)
		path, err := shared.ConfigPath()
		if err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted API key for %s\n", provider)
	return nil
}
