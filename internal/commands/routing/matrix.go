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
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/pkg/routing"
)

type matrixOptions struct {
	locations    string
	profile      string
	sources      string
	destinations string
}

// NewMatrixCommand creates the matrix command.
func NewMatrixCommand() *cobra.Command {
	opts := &matrixOptions{}

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Compute travel times and distances between locations",
		Example: `  routekit matrix --locations "8.68,49.41;8.69,49.42;8.70,49.40"
  routekit -p google matrix --locations "..." --sources 0 --destinations 1,2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatrix(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.locations, "locations", "l", "", "Locations as \"lon,lat;lon,lat\" (required)")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Routing profile (provider specific)")
	cmd.Flags().StringVar(&opts.sources, "sources", "", "Indices of source locations (default: all)")
	cmd.Flags().StringVar(&opts.destinations, "destinations", "", "Indices of destination locations (default: all)")

	return cmd
}

func runMatrix(cmd *cobra.Command, opts *matrixOptions) error {
	if err := shared.RequireFlag("locations", opts.locations); err != nil {
		return err
	}
	locations, err := shared.ParseLocationsFlag("locations", opts.locations)
	if err != nil {
		return err
	}
	sources, err := shared.ParseInts("sources", opts.sources)
	if err != nil {
		return err
	}
	destinations, err := shared.ParseInts("destinations", opts.destinations)
	if err != nil {
		return err
	}

	rt, err := shared.NewRuntime(cmd)
	if err != nil {
		return err
	}
	router, ok := rt.Router.(routing.Matrixer)
	if !ok {
		return shared.NewUnsupportedError(rt.Provider, routing.CapabilityMatrix)
	}

	req := routing.MatrixRequest{
		Locations:    locations,
		Profile:      rt.Profile(opts.profile),
		Sources:      sources,
		Destinations: destinations,
		DryRun:       shared.GetDryRun(),
	}

	var result *routing.Matrix
	err = rt.Run(cmd.Context(), routing.CapabilityMatrix, map[string]any{"locations": len(locations)}, func(ctx context.Context) error {
		var err error
		result, err = router.Matrix(ctx, req)
		return err
	})
	if err != nil || result == nil {
		return err
	}

	return shared.Output(cmd, rt.Provider, result, result.Raw, func(w io.Writer) error {
		if err := writeTable(w, "Durations (s)", result.Durations); err != nil {
			return err
		}
		return writeTable(w, "Distances (m)", result.Distances)
	})
}

// writeTable prints one matrix as an aligned table. A nil table was not
// requested and is skipped.
func writeTable(w io.Writer, title string, rows [][]*float64) error {
	if rows == nil {
		return nil
	}
	fmt.Fprintln(w, title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if len(rows) > 0 {
		header := make([]string, len(rows[0]))
		for j := range rows[0] {
			header[j] = fmt.Sprintf("%d", j)
		}
		fmt.Fprintf(tw, "\t%s\t\n", strings.Join(header, "\t"))
	}
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		fmt.Fprintf(tw, "%d\t%s\t\n", i, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
