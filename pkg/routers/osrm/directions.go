package osrm

import (
	"context"
	"encoding/json"
	"fmt"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// Geometry encodings accepted by the route service.
const (
	GeometryPolyline  = "polyline"
	GeometryPolyline6 = "polyline6"
	GeometryGeoJSON   = "geojson"
)

// DirectionsOptions are the OSRM route service parameters. Nil and empty
// fields are left to the server default.
type DirectionsOptions struct {
	// Radiuses limits snapping per location in meters; negative means
	// unlimited.
	Radiuses []float64

	// Bearings is one [bearing, range] pair per location.
	Bearings [][2]int

	Alternatives     *bool
	Steps            *bool
	ContinueStraight *bool

	// Annotations: duration, distance, speed, nodes, weight, datasources.
	Annotations []string

	// Geometries selects the shape encoding (default polyline).
	Geometries string

	// Overview: simplified, full or false.
	Overview string

	// Exclude lists road classes to avoid (e.g., toll, motorway).
	Exclude []string
}

func (o DirectionsOptions) params() httpclient.Params {
	var p httpclient.Params
	if len(o.Radiuses) > 0 {
		p.Add("radiuses", api.JoinRadiuses(o.Radiuses))
	}
	if len(o.Bearings) > 0 {
		p.Add("bearings", api.JoinBearings(o.Bearings))
	}
	if o.Alternatives != nil {
		p.Add("alternatives", api.FormatBool(*o.Alternatives))
	}
	if o.Steps != nil {
		p.Add("steps", api.FormatBool(*o.Steps))
	}
	if o.ContinueStraight != nil {
		p.Add("continue_straight", api.FormatBool(*o.ContinueStraight))
	}
	if len(o.Annotations) > 0 {
		p.Add("annotations", joinStrings(o.Annotations))
	}
	if o.Geometries != "" {
		p.Add("geometries", o.Geometries)
	}
	if o.Overview != "" {
		p.Add("overview", o.Overview)
	}
	if len(o.Exclude) > 0 {
		p.Add("exclude", joinStrings(o.Exclude))
	}
	return p
}

type routeResponse struct {
	Routes []struct {
		Geometry json.RawMessage `json:"geometry"`
		Duration float64         `json:"duration"`
		Distance float64         `json:"distance"`
	} `json:"routes"`
}

// Directions requests a route with default options.
func (r *Router) Directions(ctx context.Context, req routing.DirectionsRequest) (*routing.Directions, error) {
	opts := DirectionsOptions{Geometries: GeometryPolyline}
	if req.Alternatives {
		opts.Alternatives = api.Bool(true)
	}
	return r.DirectionsWithOptions(ctx, req, opts)
}

// DirectionsWithOptions requests a route from the route service.
func (r *Router) DirectionsWithOptions(ctx context.Context, req routing.DirectionsRequest, opts DirectionsOptions) (*routing.Directions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/route/v1/%s/%s", api.Profile(req.Profile, DefaultProfile), routing.JoinLocations(req.Locations))

	var resp routeResponse
	raw, err := r.Execute(ctx, "directions", &httpclient.Request{
		Path:   path,
		Params: opts.params(),
		Check:  r.checkCode,
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	precision := 5
	if opts.Geometries == GeometryPolyline6 {
		precision = 6
	}

	directions := &routing.Directions{Raw: raw}
	for _, route := range resp.Routes {
		geometry, err := api.DecodeGeometry(route.Geometry, precision, false)
		if err != nil {
			return nil, routeerrors.Wrapf(err, "%s directions", Name)
		}
		directions.Routes = append(directions.Routes, routing.Direction{
			Geometry: geometry,
			Duration: route.Duration,
			Distance: route.Distance,
		})
	}
	return directions, nil
}
