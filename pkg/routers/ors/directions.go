package ors

import (
	"context"
	"encoding/json"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// AlternativeRoutes configures alternative route computation.
type AlternativeRoutes struct {
	TargetCount  int     `json:"target_count,omitempty"`
	WeightFactor float64 `json:"weight_factor,omitempty"`
	ShareFactor  float64 `json:"share_factor,omitempty"`
}

// DirectionsOptions are the openrouteservice directions body fields.
type DirectionsOptions struct {
	// Preference: fastest, shortest or recommended.
	Preference string `json:"preference,omitempty"`

	// Units of distances in the response: m, km or mi. Distances in the
	// result are converted back to meters.
	Units string `json:"units,omitempty"`

	Language          string             `json:"language,omitempty"`
	Geometry          *bool              `json:"geometry,omitempty"`
	GeometrySimplify  *bool              `json:"geometry_simplify,omitempty"`
	Instructions      *bool              `json:"instructions,omitempty"`
	Elevation         *bool              `json:"elevation,omitempty"`
	ExtraInfo         []string           `json:"extra_info,omitempty"`
	Radiuses          []float64          `json:"radiuses,omitempty"`
	Bearings          [][]int            `json:"bearings,omitempty"`
	ContinueStraight  *bool              `json:"continue_straight,omitempty"`
	Maneuvers         *bool              `json:"maneuvers,omitempty"`
	AlternativeRoutes *AlternativeRoutes `json:"alternative_routes,omitempty"`

	// Options is passed through as the "options" object (avoid_features,
	// profile_params, avoid_polygons, ...).
	Options map[string]any `json:"options,omitempty"`
}

type directionsBody struct {
	Coordinates [][]float64 `json:"coordinates"`
	DirectionsOptions
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry json.RawMessage `json:"geometry"`
	} `json:"routes"`
}

// Directions requests a route with default options.
func (r *Router) Directions(ctx context.Context, req routing.DirectionsRequest) (*routing.Directions, error) {
	var opts DirectionsOptions
	if req.Alternatives {
		opts.AlternativeRoutes = &AlternativeRoutes{TargetCount: 3}
	}
	return r.DirectionsWithOptions(ctx, req, opts)
}

// DirectionsWithOptions requests a route from the directions service.
func (r *Router) DirectionsWithOptions(ctx context.Context, req routing.DirectionsRequest, opts DirectionsOptions) (*routing.Directions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	lang, err := api.Language(opts.Language)
	if err != nil {
		return nil, err
	}
	opts.Language = lang

	var resp directionsResponse
	raw, err := r.Execute(ctx, "directions", &httpclient.Request{
		Path:    "/v2/directions/" + api.Profile(req.Profile, DefaultProfile) + "/json",
		JSON:    directionsBody{Coordinates: api.LonLats(req.Locations), DirectionsOptions: opts},
		Headers: r.headers(),
		DryRun:  req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	elevation := opts.Elevation != nil && *opts.Elevation
	factor := unitFactor(opts.Units)

	directions := &routing.Directions{Raw: raw}
	for _, route := range resp.Routes {
		geometry, err := api.DecodeGeometry(route.Geometry, 5, elevation)
		if err != nil {
			return nil, routeerrors.Wrapf(err, "%s directions", Name)
		}
		directions.Routes = append(directions.Routes, routing.Direction{
			Geometry: geometry,
			Duration: route.Summary.Duration,
			Distance: route.Summary.Distance * factor,
		})
	}
	return directions, nil
}

// unitFactor converts a response distance unit to meters.
func unitFactor(units string) float64 {
	switch units {
	case "km":
		return 1000
	case "mi":
		return 1609.344
	default:
		return 1
	}
}
