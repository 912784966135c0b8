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

package completion

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/pkg/routers"
	"github.com/tombee/routekit/pkg/routing"
)

// CompleteProviderNames completes --provider with every registered router.
// Providers present in the config file are described as configured.
func CompleteProviderNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		configured := map[string]bool{}
		if cfg, err := LoadConfigForCompletion(); err == nil && cfg != nil {
			for name := range cfg.Providers {
				configured[routers.Default().Canonical(name)] = true
			}
		}

		names := []string{}
		for _, name := range routers.Names() {
			if !strings.HasPrefix(name, toComplete) {
				continue
			}
			desc := "available"
			if configured[name] {
				desc = "configured"
			}
			names = append(names, name+"\t"+desc)
		}
		sort.Strings(names)

		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// CompleteIntervalTypes completes --interval-type.
func CompleteIntervalTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return SafeCompletionWrapper(func() ([]string, cobra.ShellCompDirective) {
		return []string{
			routing.IntervalTime + "\tIntervals in seconds",
			routing.IntervalDistance + "\tIntervals in meters",
		}, cobra.ShellCompDirectiveNoFileComp
	})
}
