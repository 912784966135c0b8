package graphhopper

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/paulmach/orb/geojson"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// IsochronesOptions are the GraphHopper isochrone query parameters.
type IsochronesOptions struct {
	// ReverseFlow computes arrival instead of departure isochrones.
	ReverseFlow *bool
}

type isochroneResponse struct {
	Polygons []json.RawMessage `json:"polygons"`
}

// Isochrones requests isochrones with default options.
func (r *Router) Isochrones(ctx context.Context, req routing.IsochronesRequest) (*routing.Isochrones, error) {
	return r.IsochronesWithOptions(ctx, req, IsochronesOptions{})
}

// IsochronesWithOptions requests isochrones from the isochrone service.
// GraphHopper splits one limit into equal buckets, so the largest interval
// is the limit and the number of intervals is the bucket count. The
// reported intervals are the bucket boundaries.
func (r *Router) IsochronesWithOptions(ctx context.Context, req routing.IsochronesRequest, opts IsochronesOptions) (*routing.Isochrones, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	intervalType := routing.NormalizeIntervalType(req.IntervalType)
	limit := slices.Max(req.Intervals)
	buckets := len(req.Intervals)

	params := r.params()
	params.Add("point", req.Location.LatLonString())
	params.Add("profile", api.Profile(req.Profile, DefaultProfile))
	if intervalType == routing.IntervalDistance {
		params.Add("distance_limit", routing.FormatFloat(limit))
	} else {
		params.Add("time_limit", routing.FormatFloat(limit))
	}
	params.Add("buckets", fmt.Sprint(buckets))
	if opts.ReverseFlow != nil {
		params.Add("reverse_flow", api.FormatBool(*opts.ReverseFlow))
	}

	var resp isochroneResponse
	raw, err := r.Execute(ctx, "isochrones", &httpclient.Request{
		Path:   "/isochrone",
		Params: params,
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	isochrones := &routing.Isochrones{Raw: raw}
	for _, data := range resp.Polygons {
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, routeerrors.Wrapf(err, "%s isochrones", Name)
		}
		ring, ok := api.RingCoords(f.Geometry)
		if !ok {
			continue
		}
		bucket := f.Properties.MustFloat64("bucket", 0)
		isochrones.Isochrones = append(isochrones.Isochrones, routing.Isochrone{
			Geometry:     ring,
			Interval:     limit * (bucket + 1) / float64(buckets),
			IntervalType: intervalType,
			Center:       req.Location.LonLat(),
		})
	}
	return isochrones, nil
}
