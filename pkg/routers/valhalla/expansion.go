package valhalla

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// ExpansionProperties lists every per-edge property the expansion service
// can return. They are all requested by default.
var ExpansionProperties = []string{"costs", "durations", "distances", "statuses", "edge_ids", "pred_edge_ids"}

// ExpansionOptions are the Valhalla expansion request fields.
type ExpansionOptions struct {
	Options map[string]any

	// Properties selects per-edge properties (default all of
	// ExpansionProperties).
	Properties []string

	// SkipOpposites drops the opposite direction of already visited edges.
	SkipOpposites *bool

	// Dedupe keeps only the final state of each edge.
	Dedupe *bool

	DateTime *DateTime
}

// Expansion requests the search expansion with default options.
func (r *Router) Expansion(ctx context.Context, req routing.ExpansionRequest) (*routing.Expansions, error) {
	return r.ExpansionWithOptions(ctx, req, ExpansionOptions{})
}

// ExpansionWithOptions requests the edges explored by an isochrone search
// from the expansion service.
func (r *Router) ExpansionWithOptions(ctx context.Context, req routing.ExpansionRequest, opts ExpansionOptions) (*routing.Expansions, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	intervalType := routing.NormalizeIntervalType(req.IntervalType)
	costing := api.Profile(req.Profile, DefaultProfile)

	properties := opts.Properties
	if len(properties) == 0 {
		properties = ExpansionProperties
	}

	raw, err := r.Execute(ctx, "expansion", &httpclient.Request{
		Path:   "/expansion",
		Params: r.params(),
		JSON: isochroneBody{
			Locations:           toLocations([]routing.Location{req.Location}),
			Costing:             costing,
			CostingOptions:      costingOptions(costing, opts.Options),
			Contours:            buildContours(req.Intervals, intervalType, nil),
			DateTime:            opts.DateTime,
			Action:              "isochrone",
			ExpansionProperties: properties,
			SkipOpposites:       opts.SkipOpposites,
			Dedupe:              opts.Dedupe,
		},
		DryRun: req.DryRun,
	}, nil)
	if err != nil || raw == nil {
		return nil, err
	}

	fc, err := api.DecodeFeatureCollection(raw)
	if err != nil {
		return nil, routeerrors.Wrapf(err, "%s expansion", Name)
	}

	expansions := &routing.Expansions{Raw: raw}
	for _, f := range fc.Features {
		edges, err := parseExpansionFeature(f)
		if err != nil {
			return nil, routeerrors.Wrapf(err, "%s expansion", Name)
		}
		expansions.Edges = append(expansions.Edges, edges...)
	}
	return expansions, nil
}

// parseExpansionFeature handles both response layouts: a single
// MultiLineString feature with one property array entry per line, and one
// LineString feature per edge with scalar properties.
func parseExpansionFeature(f *geojson.Feature) ([]routing.Edge, error) {
	switch g := f.Geometry.(type) {
	case orb.LineString:
		return []routing.Edge{{
			Geometry:   pointsToCoords(g),
			Distance:   f.Properties.MustFloat64("distance", 0),
			Duration:   f.Properties.MustFloat64("duration", 0),
			Cost:       f.Properties.MustFloat64("cost", 0),
			EdgeID:     int64(f.Properties.MustFloat64("edge_id", 0)),
			PredEdgeID: int64(f.Properties.MustFloat64("pred_edge_id", 0)),
			Status:     f.Properties.MustString("status", ""),
		}}, nil
	case orb.MultiLineString:
		edges := make([]routing.Edge, len(g))
		for i, ls := range g {
			edges[i] = routing.Edge{
				Geometry:   pointsToCoords(ls),
				Distance:   floatAt(f.Properties, "distances", i),
				Duration:   floatAt(f.Properties, "durations", i),
				Cost:       floatAt(f.Properties, "costs", i),
				EdgeID:     int64(floatAt(f.Properties, "edge_ids", i)),
				PredEdgeID: int64(floatAt(f.Properties, "pred_edge_ids", i)),
				Status:     stringAt(f.Properties, "statuses", i),
			}
		}
		return edges, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected expansion geometry %s", g.GeoJSONType())
	}
}

func pointsToCoords(ls orb.LineString) [][]float64 {
	coords := make([][]float64, len(ls))
	for i, p := range ls {
		coords[i] = api.PointCoords(p)
	}
	return coords
}

func floatAt(props geojson.Properties, key string, i int) float64 {
	values, ok := props[key].([]any)
	if !ok || i >= len(values) {
		return 0
	}
	v, _ := values[i].(float64)
	return v
}

func stringAt(props geojson.Properties, key string, i int) string {
	values, ok := props[key].([]any)
	if !ok || i >= len(values) {
		return ""
	}
	s, _ := values[i].(string)
	return s
}
