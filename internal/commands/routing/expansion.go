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

package routing

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/pkg/routing"
)

// NewExpansionCommand creates the expansion command.
func NewExpansionCommand() *cobra.Command {
	opts := &reachOptions{}

	cmd := &cobra.Command{
		Use:     "expansion",
		Short:   "Show the graph edges explored from a location",
		Example: `  routekit -p valhalla expansion --location "8.681495,49.41461" --intervals 300`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpansion(cmd, opts)
		},
	}
	opts.register(cmd)

	return cmd
}

func runExpansion(cmd *cobra.Command, opts *reachOptions) error {
	loc, intervals, err := opts.parse()
	if err != nil {
		return err
	}

	rt, err := shared.NewRuntime(cmd)
	if err != nil {
		return err
	}
	router, ok := rt.Router.(routing.Expander)
	if !ok {
		return shared.NewUnsupportedError(rt.Provider, routing.CapabilityExpansion)
	}

	req := routing.ExpansionRequest{
		Location:     loc,
		Profile:      rt.Profile(opts.profile),
		Intervals:    intervals,
		IntervalType: opts.intervalType,
		DryRun:       shared.GetDryRun(),
	}

	var result *routing.Expansions
	err = rt.Run(cmd.Context(), routing.CapabilityExpansion, nil, func(ctx context.Context) error {
		var err error
		result, err = router.Expansion(ctx, req)
		return err
	})
	if err != nil || result == nil {
		return err
	}

	return shared.Output(cmd, rt.Provider, result, result.Raw, func(w io.Writer) error {
		var distance float64
		for _, e := range result.Edges {
			distance += e.Distance
		}
		_, err := fmt.Fprintf(w, "%d edges explored, %s of road\n", len(result.Edges), formatDistance(distance))
		return err
	})
}
