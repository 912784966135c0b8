package mapbox

import (
	"context"
	"fmt"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// IsochronesOptions are the Isochrone API query parameters.
type IsochronesOptions struct {
	// Colors are hex colors (without #), one per interval.
	Colors []string

	// Polygons requests polygons instead of linestrings (default true).
	Polygons *bool

	// Denoise in [0, 1] drops smaller contours.
	Denoise *float64

	// Generalize is the simplification tolerance in meters.
	Generalize *float64
}

// Isochrones requests isochrones with default options.
func (r *Router) Isochrones(ctx context.Context, req routing.IsochronesRequest) (*routing.Isochrones, error) {
	return r.IsochronesWithOptions(ctx, req, IsochronesOptions{})
}

// IsochronesWithOptions requests isochrones from the Isochrone API. Time
// intervals are sent in whole minutes, distance intervals in meters.
func (r *Router) IsochronesWithOptions(ctx context.Context, req routing.IsochronesRequest, opts IsochronesOptions) (*routing.Isochrones, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := r.RequireAPIKey(); err != nil {
		return nil, err
	}
	intervalType := routing.NormalizeIntervalType(req.IntervalType)

	params := r.params()
	if intervalType == routing.IntervalDistance {
		params.Add("contours_meters", api.JoinFloats(req.Intervals, ","))
	} else {
		minutes := make([]float64, len(req.Intervals))
		for i, v := range req.Intervals {
			minutes[i] = v / 60
		}
		params.Add("contours_minutes", api.JoinFloats(minutes, ","))
	}
	if len(opts.Colors) > 0 {
		params.Add("contours_colors", joinStrings(opts.Colors))
	}
	polygons := true
	if opts.Polygons != nil {
		polygons = *opts.Polygons
	}
	params.Add("polygons", api.FormatBool(polygons))
	if opts.Denoise != nil {
		params.Add("denoise", routing.FormatFloat(*opts.Denoise))
	}
	if opts.Generalize != nil {
		params.Add("generalize", routing.FormatFloat(*opts.Generalize))
	}

	path := fmt.Sprintf("/isochrone/v1/%s/%s", profilePath(req.Profile), req.Location.String())
	raw, err := r.Execute(ctx, "isochrones", &httpclient.Request{
		Path:   path,
		Params: params,
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
		ring, ok := api.RingCoords(f.Geometry)
		if !ok {
			continue
		}
		interval := f.Properties.MustFloat64("contour", 0)
		if intervalType == routing.IntervalTime {
			interval *= 60
		}
		isochrones.Isochrones = append(isochrones.Isochrones, routing.Isochrone{
			Geometry:     ring,
			Interval:     interval,
			IntervalType: intervalType,
			Center:       req.Location.LonLat(),
		})
	}
	return isochrones, nil
}
