package valhalla

import (
	"context"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/polyline"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// DirectionsOptions are the Valhalla route request fields.
type DirectionsOptions struct {
	// Options are the costing options of the request's costing model.
	Options map[string]any

	// Units of lengths in the response: kilometers or miles. Distances in
	// the result are always meters.
	Units string

	Language string

	// DirectionsType: none, maneuvers or instructions.
	DirectionsType string

	// Alternates is the number of alternative routes to request.
	Alternates *int

	DateTime *DateTime

	// ID is echoed back in the response.
	ID string
}

type routeBody struct {
	Locations      []location     `json:"locations"`
	Costing        string         `json:"costing"`
	CostingOptions map[string]any `json:"costing_options,omitempty"`
	Units          string         `json:"units,omitempty"`
	Language       string         `json:"language,omitempty"`
	DirectionsType string         `json:"directions_type,omitempty"`
	Alternates     *int           `json:"alternates,omitempty"`
	DateTime       *DateTime      `json:"date_time,omitempty"`
	ID             string         `json:"id,omitempty"`
}

type trip struct {
	Legs []struct {
		Shape string `json:"shape"`
	} `json:"legs"`
	Summary struct {
		Length float64 `json:"length"`
		Time   float64 `json:"time"`
	} `json:"summary"`
}

type routeResponse struct {
	Trip       trip `json:"trip"`
	Alternates []struct {
		Trip trip `json:"trip"`
	} `json:"alternates"`
}

// Directions requests a route with default options.
func (r *Router) Directions(ctx context.Context, req routing.DirectionsRequest) (*routing.Directions, error) {
	var opts DirectionsOptions
	if req.Alternatives {
		opts.Alternates = api.Int(2)
	}
	return r.DirectionsWithOptions(ctx, req, opts)
}

// DirectionsWithOptions requests a route from the route service.
func (r *Router) DirectionsWithOptions(ctx context.Context, req routing.DirectionsRequest, opts DirectionsOptions) (*routing.Directions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	lang, err := api.Language(opts.Language)
	if err != nil {
		return nil, err
	}
	opts.Language = lang
	costing := api.Profile(req.Profile, DefaultProfile)

	var resp routeResponse
	raw, err := r.Execute(ctx, "directions", &httpclient.Request{
		Path:   "/route",
		Params: r.params(),
		JSON: routeBody{
			Locations:      toLocations(req.Locations),
			Costing:        costing,
			CostingOptions: costingOptions(costing, opts.Options),
			Units:          opts.Units,
			Language:       opts.Language,
			DirectionsType: opts.DirectionsType,
			Alternates:     opts.Alternates,
			DateTime:       opts.DateTime,
			ID:             opts.ID,
		},
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	factor := lengthFactor(opts.Units)
	directions := &routing.Directions{Raw: raw}

	trips := []trip{resp.Trip}
	for _, alt := range resp.Alternates {
		trips = append(trips, alt.Trip)
	}
	for _, t := range trips {
		direction, err := parseTrip(t, factor)
		if err != nil {
			return nil, routeerrors.Wrapf(err, "%s directions", Name)
		}
		directions.Routes = append(directions.Routes, direction)
	}
	return directions, nil
}

// parseTrip concatenates the leg shapes, which are polyline6 encoded.
func parseTrip(t trip, factor float64) (routing.Direction, error) {
	var geometry [][]float64
	for _, leg := range t.Legs {
		coords, err := polyline.Decode6(leg.Shape)
		if err != nil {
			return routing.Direction{}, err
		}
		geometry = append(geometry, coords...)
	}
	return routing.Direction{
		Geometry: geometry,
		Duration: t.Summary.Time,
		Distance: t.Summary.Length * factor,
	}, nil
}
