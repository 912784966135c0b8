package google

import (
	"context"
	"strings"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/polyline"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// DirectionsOptions are the Directions API query parameters.
type DirectionsOptions struct {
	Alternatives *bool

	// Avoid: tolls, highways, ferries, indoor.
	Avoid []string

	Language string
	Region   string

	// Units: metric or imperial. Only affects text fields.
	Units string

	// ArrivalTime and DepartureTime are seconds since the epoch;
	// DepartureTime may also be "now".
	ArrivalTime   string
	DepartureTime string

	TrafficModel             string
	TransitMode              []string
	TransitRoutingPreference string

	// OptimizeWaypoints lets Google reorder intermediate locations.
	OptimizeWaypoints bool

	// Via marks intermediate locations as pass-through points.
	Via bool
}

func (o DirectionsOptions) params(p *httpclient.Params) {
	if o.Alternatives != nil {
		p.Add("alternatives", api.FormatBool(*o.Alternatives))
	}
	if len(o.Avoid) > 0 {
		p.Add("avoid", strings.Join(o.Avoid, "|"))
	}
	if o.Language != "" {
		p.Add("language", o.Language)
	}
	if o.Region != "" {
		p.Add("region", o.Region)
	}
	if o.Units != "" {
		p.Add("units", o.Units)
	}
	if o.ArrivalTime != "" {
		p.Add("arrival_time", o.ArrivalTime)
	}
	if o.DepartureTime != "" {
		p.Add("departure_time", o.DepartureTime)
	}
	if o.TrafficModel != "" {
		p.Add("traffic_model", o.TrafficModel)
	}
	if len(o.TransitMode) > 0 {
		p.Add("transit_mode", strings.Join(o.TransitMode, "|"))
	}
	if o.TransitRoutingPreference != "" {
		p.Add("transit_routing_preference", o.TransitRoutingPreference)
	}
}

type value struct {
	Value float64 `json:"value"`
}

type directionsResponse struct {
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance value `json:"distance"`
			Duration value `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// Directions requests a route with default options.
func (r *Router) Directions(ctx context.Context, req routing.DirectionsRequest) (*routing.Directions, error) {
	var opts DirectionsOptions
	if req.Alternatives {
		opts.Alternatives = api.Bool(true)
	}
	return r.DirectionsWithOptions(ctx, req, opts)
}

// DirectionsWithOptions requests a route from the Directions API. The
// first location is the origin, the last the destination and the rest
// become waypoints.
func (r *Router) DirectionsWithOptions(ctx context.Context, req routing.DirectionsRequest, opts DirectionsOptions) (*routing.Directions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	lang, err := api.Language(opts.Language)
	if err != nil {
		return nil, err
	}
	opts.Language = lang
	if err := r.RequireAPIKey(); err != nil {
		return nil, err
	}

	locs := req.Locations
	params := r.params()
	params.Add("origin", locs[0].LatLonString())
	params.Add("destination", locs[len(locs)-1].LatLonString())
	params.Add("mode", api.Profile(req.Profile, DefaultProfile))
	if waypoints := locs[1 : len(locs)-1]; len(waypoints) > 0 {
		params.Add("waypoints", formatWaypoints(waypoints, opts))
	}
	opts.params(&params)

	var resp directionsResponse
	raw, err := r.Execute(ctx, "directions", &httpclient.Request{
		Path:   "/directions/json",
		Params: params,
		Check:  r.checkStatus,
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	directions := &routing.Directions{Routes: []routing.Direction{}, Raw: raw}
	for _, route := range resp.Routes {
		geometry, err := polyline.Decode5(route.OverviewPolyline.Points)
		if err != nil {
			return nil, routeerrors.Wrapf(err, "%s directions", Name)
		}
		direction := routing.Direction{Geometry: geometry}
		for _, leg := range route.Legs {
			direction.Duration += leg.Duration.Value
			direction.Distance += leg.Distance.Value
		}
		directions.Routes = append(directions.Routes, direction)
	}
	return directions, nil
}

func formatWaypoints(waypoints []routing.Location, opts DirectionsOptions) string {
	parts := make([]string, 0, len(waypoints)+1)
	if opts.OptimizeWaypoints {
		parts = append(parts, "optimize:true")
	}
	for _, wp := range waypoints {
		s := wp.LatLonString()
		if opts.Via {
			s = "via:" + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "|")
}
