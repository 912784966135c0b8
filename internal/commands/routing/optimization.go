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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/commands/completion"
	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/pkg/routing"
)

// problem is the JSON document read by the optimize command.
type problem struct {
	Jobs     []routing.Job     `json:"jobs"`
	Vehicles []routing.Vehicle `json:"vehicles"`
}

// NewOptimizationCommand creates the optimize command.
func NewOptimizationCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Solve a vehicle routing problem",
		Long: `Solve a vehicle routing problem read from a JSON file:

  {
    "jobs":     [{"id": 1, "location": {"lon": 8.68, "lat": 49.41}, "service": 300}],
    "vehicles": [{"id": 1, "profile": "driving-car", "start": {"lon": 8.67, "lat": 49.40}}]
  }`,
		Example: `  routekit -p ors optimize --file problem.json
  cat problem.json | routekit -p ors optimize --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimization(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Problem file, or - for stdin (required)")
	_ = cmd.RegisterFlagCompletionFunc("file", completion.CompleteJSONFiles)

	return cmd
}

func readProblem(cmd *cobra.Command, file string) (*problem, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, shared.NewUsageError("failed to read problem", err)
	}

	var p problem
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, shared.NewUsageError("invalid problem JSON", err)
	}
	return &p, nil
}

func runOptimization(cmd *cobra.Command, file string) error {
	if err := shared.RequireFlag("file", file); err != nil {
		return err
	}
	p, err := readProblem(cmd, file)
	if err != nil {
		return err
	}

	rt, err := shared.NewRuntime(cmd)
	if err != nil {
		return err
	}
	router, ok := rt.Router.(routing.Optimizer)
	if !ok {
		return shared.NewUnsupportedError(rt.Provider, routing.CapabilityOptimization)
	}

	req := routing.OptimizationRequest{
		Jobs:     p.Jobs,
		Vehicles: p.Vehicles,
		DryRun:   shared.GetDryRun(),
	}

	var result *routing.Optimization
	meta := map[string]any{"jobs": len(p.Jobs), "vehicles": len(p.Vehicles)}
	err = rt.Run(cmd.Context(), routing.CapabilityOptimization, meta, func(ctx context.Context) error {
		var err error
		result, err = router.Optimization(ctx, req)
		return err
	})
	if err != nil || result == nil {
		return err
	}

	return shared.Output(cmd, rt.Provider, result, result.Raw, func(w io.Writer) error {
		fmt.Fprintf(w, "Total: %s, %s, cost %.0f\n",
			formatDistance(result.Distance), formatDuration(result.Duration), result.Cost)
		for _, route := range result.Routes {
			fmt.Fprintf(w, "Vehicle %d: %s, %s\n", route.Vehicle, formatDistance(route.Distance), formatDuration(route.Duration))
			for _, step := range route.Steps {
				if step.Type == "job" {
					fmt.Fprintf(w, "  job %d at +%s\n", step.Job, formatDuration(step.Arrival))
				}
			}
		}
		if len(result.Unassigned) > 0 {
			fmt.Fprintf(w, "Unassigned jobs: %v\n", result.Unassigned)
		}
		return nil
	})
}
