package graphhopper

import (
	"context"
	"encoding/json"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/polyline"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// DirectionsOptions are the GraphHopper route request fields.
type DirectionsOptions struct {
	Locale       string   `json:"locale,omitempty"`
	Instructions *bool    `json:"instructions,omitempty"`
	Elevation    *bool    `json:"elevation,omitempty"`
	CalcPoints   *bool    `json:"calc_points,omitempty"`
	Details      []string `json:"details,omitempty"`

	// Algorithm: round_trip or alternative_route.
	Algorithm string `json:"algorithm,omitempty"`

	MaxPaths        *int     `json:"alternative_route.max_paths,omitempty"`
	Headings        []int    `json:"headings,omitempty"`
	PointHints      []string `json:"point_hints,omitempty"`
	SnapPreventions []string `json:"snap_preventions,omitempty"`
	Curbsides       []string `json:"curbsides,omitempty"`

	// CustomModel is passed through unchanged.
	CustomModel map[string]any `json:"custom_model,omitempty"`

	// PointsEncodedMultiplier is 1e5 (default) or 1e6.
	PointsEncodedMultiplier float64 `json:"points_encoded_multiplier,omitempty"`
}

type routeBody struct {
	Points        [][]float64 `json:"points"`
	Profile       string      `json:"profile"`
	PointsEncoded bool        `json:"points_encoded"`
	DirectionsOptions
}

type routeResponse struct {
	Paths []struct {
		Distance   float64         `json:"distance"`
		Time       float64         `json:"time"`
		Points     json.RawMessage `json:"points"`
		Multiplier float64         `json:"points_encoded_multiplier"`
	} `json:"paths"`
}

// Directions requests a route with default options.
func (r *Router) Directions(ctx context.Context, req routing.DirectionsRequest) (*routing.Directions, error) {
	var opts DirectionsOptions
	if req.Alternatives {
		opts.Algorithm = "alternative_route"
		opts.MaxPaths = api.Int(3)
	}
	return r.DirectionsWithOptions(ctx, req, opts)
}

// DirectionsWithOptions requests a route from the routing service.
func (r *Router) DirectionsWithOptions(ctx context.Context, req routing.DirectionsRequest, opts DirectionsOptions) (*routing.Directions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp routeResponse
	raw, err := r.Execute(ctx, "directions", &httpclient.Request{
		Path:   "/route",
		Params: r.params(),
		JSON: routeBody{
			Points:            api.LonLats(req.Locations),
			Profile:           api.Profile(req.Profile, DefaultProfile),
			PointsEncoded:     true,
			DirectionsOptions: opts,
		},
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	elevation := opts.Elevation != nil && *opts.Elevation
	directions := &routing.Directions{Raw: raw}
	for _, path := range resp.Paths {
		geometry, err := decodePoints(path.Points, path.Multiplier, elevation)
		if err != nil {
			return nil, routeerrors.Wrapf(err, "%s directions", Name)
		}
		directions.Routes = append(directions.Routes, routing.Direction{
			Geometry: geometry,
			Duration: path.Time / 1000,
			Distance: path.Distance,
		})
	}
	return directions, nil
}

// decodePoints decodes an encoded path. The multiplier selects the
// precision; elevation is always scaled by 100.
func decodePoints(raw json.RawMessage, multiplier float64, elevation bool) ([][]float64, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		// points_encoded=false in a custom body yields a GeoJSON LineString.
		return api.DecodeGeometry(raw, 5, elevation)
	}
	precision := 5
	if multiplier == 1e6 {
		precision = 6
	}
	return polyline.Decode(encoded, polyline.Options{
		Precision: precision,
		Elevation: elevation,
	})
}
