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

// Package polyline implements the offline polyline encode and decode
// commands.
package polyline

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/commands/completion"
	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/pkg/polyline"
	"github.com/tombee/routekit/pkg/routing"
)

type codecOptions struct {
	precision int
	elevation bool
	order     string
}

func (o *codecOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.precision, "precision", 5, "Decimal places: 5 (Google, OSRM) or 6 (Valhalla, OSRM polyline6)")
	cmd.Flags().BoolVar(&o.elevation, "elevation", false, "Points carry a third elevation value (openrouteservice)")
	cmd.Flags().StringVar(&o.order, "order", "lonlat", "Coordinate order: lonlat or latlon")
	_ = cmd.RegisterFlagCompletionFunc("order", completion.CompleteCoordinateOrder)
}

func (o *codecOptions) options() (polyline.Options, error) {
	opts := polyline.Options{Precision: o.precision, Elevation: o.elevation}
	switch strings.ToLower(o.order) {
	case "lonlat", "":
		opts.Order = polyline.LonLat
	case "latlon":
		opts.Order = polyline.LatLon
	default:
		return opts, shared.NewUsageError(fmt.Sprintf("--order must be lonlat or latlon, got %q", o.order), nil)
	}
	if o.precision != 5 && o.precision != 6 {
		return opts, shared.NewUsageError("invalid --precision", polyline.ErrPrecision)
	}
	return opts, nil
}

// NewPolylineCommand creates the polyline command group.
func NewPolylineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "polyline",
		Short: "Encode and decode polylines offline",
	}
	cmd.AddCommand(newDecodeCommand(), newEncodeCommand())
	return cmd
}

func newDecodeCommand() *cobra.Command {
	opts := &codecOptions{}

	cmd := &cobra.Command{
		Use:   "decode <polyline>",
		Short: "Decode an encoded polyline into coordinates",
		Example: `  routekit polyline decode '_p~iF~ps|U_ulLnnqC'
  routekit polyline decode --precision 6 --order latlon '<shape>'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options()
			if err != nil {
				return err
			}
			coords, err := polyline.Decode(args[0], o)
			if err != nil {
				return shared.NewUsageError("failed to decode polyline", err)
			}
			return shared.EmitJSON(cmd.OutOrStdout(), coords)
		},
	}
	opts.register(cmd)

	return cmd
}

func newEncodeCommand() *cobra.Command {
	opts := &codecOptions{}

	cmd := &cobra.Command{
		Use:   "encode <coordinates>",
		Short: "Encode \"x,y[,z];x,y[,z]\" coordinates as a polyline",
		Example: `  routekit polyline encode "-120.2,38.5;-120.95,40.7"
  routekit polyline encode --elevation "8.68864,49.42058,110.5;8.68092,49.41578,112"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := opts.options()
			if err != nil {
				return err
			}
			coords, err := parseCoordinates(args[0])
			if err != nil {
				return err
			}
			encoded, err := polyline.Encode(coords, o)
			if err != nil {
				return shared.NewUsageError("failed to encode polyline", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
	opts.register(cmd)

	return cmd
}

// parseCoordinates parses "x,y[,z];..." tuples.
func parseCoordinates(s string) ([][]float64, error) {
	fields := strings.Split(s, ";")
	coords := make([][]float64, 0, len(fields))
	for i, field := range fields {
		values, err := shared.ParseFloats("coordinates", field)
		if err != nil {
			return nil, err
		}
		if len(values) < 2 || len(values) > 3 {
			return nil, shared.NewUsageError(fmt.Sprintf("the %d%s coordinate %q must have 2 or 3 values",
				i+1, routing.Ordinal(i+1), field), nil)
		}
		coords = append(coords, values)
	}
	return coords, nil
}
