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

	"github.com/tombee/routekit/internal/commands/completion"
	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/pkg/routing"
)

// reachOptions are shared by isochrones and expansion.
type reachOptions struct {
	location     string
	profile      string
	intervals    string
	intervalType string
}

func (o *reachOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.location, "location", "", "Center as \"lon,lat\" (required)")
	cmd.Flags().StringVar(&o.profile, "profile", "", "Routing profile (provider specific)")
	cmd.Flags().StringVar(&o.intervals, "intervals", "", "Comma-separated intervals, seconds or meters (required)")
	cmd.Flags().StringVar(&o.intervalType, "interval-type", routing.IntervalTime, "Interval type: time or distance")
	_ = cmd.RegisterFlagCompletionFunc("interval-type", completion.CompleteIntervalTypes)
}

func (o *reachOptions) parse() (routing.Location, []float64, error) {
	if err := shared.RequireFlag("location", o.location); err != nil {
		return routing.Location{}, nil, err
	}
	if err := shared.RequireFlag("intervals", o.intervals); err != nil {
		return routing.Location{}, nil, err
	}
	loc, err := shared.ParseLocationFlag("location", o.location)
	if err != nil {
		return routing.Location{}, nil, err
	}
	intervals, err := shared.ParseFloats("intervals", o.intervals)
	if err != nil {
		return routing.Location{}, nil, err
	}
	return loc, intervals, nil
}

// NewIsochronesCommand creates the isochrones command.
func NewIsochronesCommand() *cobra.Command {
	opts := &reachOptions{}

	cmd := &cobra.Command{
		Use:   "isochrones",
		Short: "Compute areas reachable within time or distance intervals",
		Example: `  routekit -p ors isochrones --location "8.681495,49.41461" --intervals 300,600
  routekit -p valhalla isochrones --location "..." --intervals 1000 --interval-type distance`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIsochrones(cmd, opts)
		},
	}
	opts.register(cmd)

	return cmd
}

func runIsochrones(cmd *cobra.Command, opts *reachOptions) error {
	loc, intervals, err := opts.parse()
	if err != nil {
		return err
	}

	rt, err := shared.NewRuntime(cmd)
	if err != nil {
		return err
	}
	router, ok := rt.Router.(routing.Isochroner)
	if !ok {
		return shared.NewUnsupportedError(rt.Provider, routing.CapabilityIsochrones)
	}

	req := routing.IsochronesRequest{
		Location:     loc,
		Profile:      rt.Profile(opts.profile),
		Intervals:    intervals,
		IntervalType: opts.intervalType,
		DryRun:       shared.GetDryRun(),
	}

	var result *routing.Isochrones
	err = rt.Run(cmd.Context(), routing.CapabilityIsochrones, map[string]any{"intervals": len(intervals)}, func(ctx context.Context) error {
		var err error
		result, err = router.Isochrones(ctx, req)
		return err
	})
	if err != nil || result == nil {
		return err
	}

	return shared.Output(cmd, rt.Provider, result, result.Raw, func(w io.Writer) error {
		for _, iso := range result.Isochrones {
			if _, err := fmt.Fprintf(w, "%s: %d vertices\n",
				formatInterval(iso.Interval, iso.IntervalType), len(iso.Geometry)); err != nil {
				return err
			}
		}
		return nil
	})
}
