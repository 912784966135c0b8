package ors

import (
	"context"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// IsochronesOptions are the openrouteservice isochrones body fields.
type IsochronesOptions struct {
	// Units for distance ranges: m, km or mi. Ranges are always passed in
	// meters, so leave empty unless the server needs it.
	Units string `json:"units,omitempty"`

	// LocationType: start or destination.
	LocationType string `json:"location_type,omitempty"`

	// Smoothing in [0, 100].
	Smoothing *float64 `json:"smoothing,omitempty"`

	// Attributes: area, reachfactor, total_pop.
	Attributes    []string       `json:"attributes,omitempty"`
	Intersections *bool          `json:"intersections,omitempty"`
	AreaUnits     string         `json:"area_units,omitempty"`
	Options       map[string]any `json:"options,omitempty"`
}

type isochronesBody struct {
	Locations [][]float64 `json:"locations"`
	Range     []float64   `json:"range"`
	RangeType string      `json:"range_type"`
	IsochronesOptions
}

// Isochrones requests isochrones with default options.
func (r *Router) Isochrones(ctx context.Context, req routing.IsochronesRequest) (*routing.Isochrones, error) {
	return r.IsochronesWithOptions(ctx, req, IsochronesOptions{})
}

// IsochronesWithOptions requests isochrones from the isochrones service.
// The response is GeoJSON with one polygon per range.
func (r *Router) IsochronesWithOptions(ctx context.Context, req routing.IsochronesRequest, opts IsochronesOptions) (*routing.Isochrones, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	intervalType := routing.NormalizeIntervalType(req.IntervalType)

	raw, err := r.Execute(ctx, "isochrones", &httpclient.Request{
		Path: "/v2/isochrones/" + api.Profile(req.Profile, DefaultProfile),
		JSON: isochronesBody{
			Locations:         [][]float64{req.Location.LonLat()},
			Range:             req.Intervals,
			RangeType:         intervalType,
			IsochronesOptions: opts,
		},
		Headers: r.headers(),
		DryRun:  req.DryRun,
	}, nil)
	if err != nil || raw == nil {
		return nil, err
	}

	fc, err := api.DecodeFeatureCollection(raw)
	if err != nil {
		return nil, routeerrors.Wrapf(err, "%s isochrones", Name)
	}

	isochrones := &routing.Isochrones{Raw: raw}
	for _, f := range fc.Features {
		ring, ok := api.RingCoords(f.Geometry)
		if !ok {
			continue
		}
		iso := routing.Isochrone{
			Geometry:     ring,
			Interval:     f.Properties.MustFloat64("value", 0),
			IntervalType: intervalType,
			Center:       req.Location.LonLat(),
		}
		if center, ok := f.Properties["center"].([]any); ok && len(center) == 2 {
			lon, lonOK := center[0].(float64)
			lat, latOK := center[1].(float64)
			if lonOK && latOK {
				iso.Center = []float64{lon, lat}
			}
		}
		isochrones.Isochrones = append(isochrones.Isochrones, iso)
	}
	return isochrones, nil
}
