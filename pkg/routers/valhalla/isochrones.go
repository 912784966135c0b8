package valhalla

import (
	"context"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// IsochronesOptions are the Valhalla isochrone request fields.
type IsochronesOptions struct {
	Options map[string]any

	// Colors are hex colors (without #), one per interval.
	Colors []string

	// Polygons requests polygons instead of linestrings (default true).
	Polygons *bool

	// Denoise in [0, 1] drops smaller contours.
	Denoise *float64

	// Generalize is the simplification tolerance in meters.
	Generalize *float64

	ShowLocations *bool
	DateTime      *DateTime
	ID            string
}

// contour is one requested isoline. Time is in minutes, distance in
// kilometers.
type contour struct {
	Time     *float64 `json:"time,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	Color    string   `json:"color,omitempty"`
}

type isochroneBody struct {
	Locations      []location     `json:"locations"`
	Costing        string         `json:"costing"`
	CostingOptions map[string]any `json:"costing_options,omitempty"`
	Contours       []contour      `json:"contours"`
	Polygons       bool           `json:"polygons"`
	Denoise        *float64       `json:"denoise,omitempty"`
	Generalize     *float64       `json:"generalize,omitempty"`
	ShowLocations  *bool          `json:"show_locations,omitempty"`
	DateTime       *DateTime      `json:"date_time,omitempty"`
	ID             string         `json:"id,omitempty"`

	// Action selects the expansion variant on /expansion.
	Action              string   `json:"action,omitempty"`
	ExpansionProperties []string `json:"expansion_properties,omitempty"`
	SkipOpposites       *bool    `json:"skip_opposites,omitempty"`
	Dedupe              *bool    `json:"dedupe,omitempty"`
}

// buildContours converts seconds to minutes and meters to kilometers.
func buildContours(intervals []float64, intervalType string, colors []string) []contour {
	contours := make([]contour, len(intervals))
	for i, v := range intervals {
		var c contour
		if intervalType == routing.IntervalDistance {
			km := v / 1000
			c.Distance = &km
		} else {
			min := v / 60
			c.Time = &min
		}
		if i < len(colors) {
			c.Color = colors[i]
		}
		contours[i] = c
	}
	return contours
}

// contourToInterval reverses buildContours for a reported contour value.
func contourToInterval(value float64, intervalType string) float64 {
	if intervalType == routing.IntervalDistance {
		return value * 1000
	}
	return value * 60
}

// Isochrones requests isochrones with default options.
func (r *Router) Isochrones(ctx context.Context, req routing.IsochronesRequest) (*routing.Isochrones, error) {
	return r.IsochronesWithOptions(ctx, req, IsochronesOptions{})
}

// IsochronesWithOptions requests isochrones from the isochrone service.
func (r *Router) IsochronesWithOptions(ctx context.Context, req routing.IsochronesRequest, opts IsochronesOptions) (*routing.Isochrones, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	intervalType := routing.NormalizeIntervalType(req.IntervalType)
	costing := api.Profile(req.Profile, DefaultProfile)

	polygons := true
	if opts.Polygons != nil {
		polygons = *opts.Polygons
	}

	raw, err := r.Execute(ctx, "isochrones", &httpclient.Request{
		Path:   "/isochrone",
		Params: r.params(),
		JSON: isochroneBody{
			Locations:      toLocations([]routing.Location{req.Location}),
			Costing:        costing,
			CostingOptions: costingOptions(costing, opts.Options),
			Contours:       buildContours(req.Intervals, intervalType, opts.Colors),
			Polygons:       polygons,
			Denoise:        opts.Denoise,
			Generalize:     opts.Generalize,
			ShowLocations:  opts.ShowLocations,
			DateTime:       opts.DateTime,
			ID:             opts.ID,
		},
		DryRun: req.DryRun,
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
		// show_locations adds Point and MultiPoint features.
		ring, ok := api.RingCoords(f.Geometry)
		if !ok {
			continue
		}
		isochrones.Isochrones = append(isochrones.Isochrones, routing.Isochrone{
			Geometry:     ring,
			Interval:     contourToInterval(f.Properties.MustFloat64("contour", 0), intervalType),
			IntervalType: intervalType,
			Center:       req.Location.LonLat(),
		})
	}
	return isochrones, nil
}
