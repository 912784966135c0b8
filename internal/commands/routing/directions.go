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

// Package routing implements the CLI commands that call routing providers.
package routing

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/pkg/routing"
)

type directionsOptions struct {
	locations    string
	profile      string
	alternatives bool
}

// NewDirectionsCommand creates the directions command.
func NewDirectionsCommand() *cobra.Command {
	opts := &directionsOptions{}

	cmd := &cobra.Command{
		Use:   "directions",
		Short: "Compute a route through two or more locations",
		Long: `Compute a route through the given locations in order.

Locations are "lon,lat" pairs separated by semicolons.`,
		Example: `  routekit directions --locations "8.681495,49.41461;8.687872,49.420318"
  routekit -p valhalla directions --locations "..." --profile bicycle --alternatives`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirections(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.locations, "locations", "l", "", "Locations as \"lon,lat;lon,lat\" (required)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Routing profile (provider specific, e.g. driving, auto, car)")
	cmd.Flags().BoolVar(&opts.alternatives, "alternatives", false, "Request alternative routes")

	return cmd
}

func runDirections(cmd *cobra.Command, opts *directionsOptions) error {
	if err := shared.RequireFlag("locations", opts.locations); err != nil {
		return err
	}
	locations, err := shared.ParseLocationsFlag("locations", opts.locations)
	if err != nil {
		return err
	}

	rt, err := shared.NewRuntime(cmd)
	if err != nil {
		return err
	}
	router, ok := rt.Router.(routing.Directioner)
	if !ok {
		return shared.NewUnsupportedError(rt.Provider, routing.CapabilityDirections)
	}

	req := routing.DirectionsRequest{
		Locations:    locations,
		Profile:      rt.Profile(opts.profile),
		Alternatives: opts.alternatives,
		DryRun:       shared.GetDryRun(),
	}

	var result *routing.Directions
	err = rt.Run(cmd.Context(), routing.CapabilityDirections, map[string]any{"locations": len(locations)}, func(ctx context.Context) error {
		var err error
		result, err = router.Directions(ctx, req)
		return err
	})
	if err != nil || result == nil {
		return err
	}

	return shared.Output(cmd, rt.Provider, result, result.Raw, func(w io.Writer) error {
		return writeDirections(w, result)
	})
}

func writeDirections(w io.Writer, d *routing.Directions) error {
	if len(d.Routes) == 0 {
		_, err := fmt.Fprintln(w, "No route found")
		return err
	}
	for i, route := range d.Routes {
		if _, err := fmt.Fprintf(w, "Route %d: %s, %s (%d points)\n",
			i+1, formatDistance(route.Distance), formatDuration(route.Duration), len(route.Geometry)); err != nil {
			return err
		}
	}
	return nil
}
