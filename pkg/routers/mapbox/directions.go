package mapbox

import (
	"context"
	"encoding/json"
	"net/url"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// Geometry encodings accepted by the Directions API.
const (
	GeometryPolyline  = "polyline"
	GeometryPolyline6 = "polyline6"
	GeometryGeoJSON   = "geojson"
)

// DirectionsOptions are the Directions API form fields.
type DirectionsOptions struct {
	Alternatives     *bool
	Steps            *bool
	ContinueStraight *bool

	// Geometries selects the shape encoding (default polyline).
	Geometries string

	// Overview: simplified, full or false.
	Overview string

	// Annotations: duration, distance, speed, congestion, ...
	Annotations []string

	// Radiuses per location in meters; negative means unlimited.
	Radiuses []float64

	// Bearings is one [bearing, range] pair per location.
	Bearings [][2]int

	// Exclude: toll, motorway, ferry, ...
	Exclude []string

	Language string
}

func (o DirectionsOptions) form(locations []routing.Location) url.Values {
	form := url.Values{}
	form.Set("coordinates", routing.JoinLocations(locations))
	form.Set("geometries", o.geometries())
	if o.Alternatives != nil {
		form.Set("alternatives", api.FormatBool(*o.Alternatives))
	}
	if o.Steps != nil {
		form.Set("steps", api.FormatBool(*o.Steps))
	}
	if o.ContinueStraight != nil {
		form.Set("continue_straight", api.FormatBool(*o.ContinueStraight))
	}
	if o.Overview != "" {
		form.Set("overview", o.Overview)
	}
	if len(o.Annotations) > 0 {
		form.Set("annotations", joinStrings(o.Annotations))
	}
	if len(o.Radiuses) > 0 {
		form.Set("radiuses", api.JoinRadiuses(o.Radiuses))
	}
	if len(o.Bearings) > 0 {
		form.Set("bearings", api.JoinBearings(o.Bearings))
	}
	if len(o.Exclude) > 0 {
		form.Set("exclude", joinStrings(o.Exclude))
	}
	if o.Language != "" {
		form.Set("language", o.Language)
	}
	return form
}

func (o DirectionsOptions) geometries() string {
	if o.Geometries == "" {
		return GeometryPolyline
	}
	return o.Geometries
}

type directionsResponse struct {
	Routes []struct {
		Geometry json.RawMessage `json:"geometry"`
		Duration float64         `json:"duration"`
		Distance float64         `json:"distance"`
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
// coordinates travel in a form body so long routes fit.
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

	var resp directionsResponse
	raw, err := r.Execute(ctx, "directions", &httpclient.Request{
		Path:   "/directions/v5/" + profilePath(req.Profile),
		Params: r.params(),
		Form:   opts.form(req.Locations),
		Check:  r.checkCode,
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	precision := 5
	if opts.geometries() == GeometryPolyline6 {
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
