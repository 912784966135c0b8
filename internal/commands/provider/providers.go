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

package provider

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers"
	"github.com/tombee/routekit/pkg/routing"
)

// ProviderStatus describes one registered provider for display
type ProviderStatus struct {
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"`
	BaseURL      string   `json:"base_url"`
	Key          string   `json:"key"`
	Default      bool     `json:"default,omitempty"`
}

// clientHolder is implemented by every built-in adapter.
type clientHolder interface {
	Client() *httpclient.Client
}

// NewProvidersCommand creates the providers command.
func NewProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List routing providers and their capabilities",
		Long: `List the built-in routing providers with the operations each supports,
the endpoint in use and whether an API key was found.`,
		Args: cobra.NoArgs,
		RunE: runProviders,
	}
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	resolver := shared.NewResolver()
	defaultProvider := routers.Default().Canonical(cfg.DefaultProvider)

	statuses := make([]ProviderStatus, 0, len(routers.Names()))
	for _, name := range routers.Names() {
		pc, keyErr := cfg.ProviderConfig(cmd.Context(), name, resolver)
		if keyErr != nil {
			// Still list the provider; the key column carries the problem.
			client := cfg.ClientConfig(name)
			pc.Client = &client
		}

		router, err := routers.New(name, pc)
		if err != nil {
			return err
		}

		status := ProviderStatus{
			Name:         name,
			Capabilities: routing.Capabilities(router),
			Default:      name == defaultProvider,
			Key:          "-",
		}
		if holder, ok := router.(clientHolder); ok {
			status.BaseURL = holder.Client().Config().BaseURL
		}
		switch {
		case keyErr != nil:
			status.Key = "error: " + keyErr.Error()
		case pc.APIKey != "":
			status.Key = "set"
		}
		statuses = append(statuses, status)
	}

	out := cmd.OutOrStdout()
	if shared.GetJSON() {
		return shared.EmitJSON(out, map[string][]ProviderStatus{"providers": statuses})
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCAPABILITIES\tBASE URL\tKEY")
	for _, s := range statuses {
		name := s.Name
		if s.Default {
			name += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, strings.Join(s.Capabilities, ","), s.BaseURL, s.Key)
	}
	return w.Flush()
}
