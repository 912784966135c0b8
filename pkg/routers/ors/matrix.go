package ors

import (
	"context"

	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// MatrixOptions are the openrouteservice matrix body fields.
type MatrixOptions struct {
	// Metrics: duration and/or distance (default both).
	Metrics          []string `json:"metrics,omitempty"`
	ResolveLocations *bool    `json:"resolve_locations,omitempty"`

	// Units of distances: m, km or mi. Converted back to meters.
	Units string `json:"units,omitempty"`
}

type matrixBody struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources,omitempty"`
	Destinations []int       `json:"destinations,omitempty"`
	MatrixOptions
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// Matrix requests durations and distances with default options.
func (r *Router) Matrix(ctx context.Context, req routing.MatrixRequest) (*routing.Matrix, error) {
	return r.MatrixWithOptions(ctx, req, MatrixOptions{})
}

// MatrixWithOptions requests a matrix from the matrix service.
func (r *Router) MatrixWithOptions(ctx context.Context, req routing.MatrixRequest, opts MatrixOptions) (*routing.Matrix, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Metrics) == 0 {
		opts.Metrics = []string{"duration", "distance"}
	}

	var resp matrixResponse
	raw, err := r.Execute(ctx, "matrix", &httpclient.Request{
		Path: "/v2/matrix/" + api.Profile(req.Profile, DefaultProfile),
		JSON: matrixBody{
			Locations:     api.LonLats(req.Locations),
			Sources:       req.Sources,
			Destinations:  req.Destinations,
			MatrixOptions: opts,
		},
		Headers: r.headers(),
		DryRun:  req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	if factor := unitFactor(opts.Units); factor != 1 {
		for _, row := range resp.Distances {
			for j, d := range row {
				if d != nil {
					m := *d * factor
					row[j] = &m
				}
			}
		}
	}

	return &routing.Matrix{
		Durations: resp.Durations,
		Distances: resp.Distances,
		Raw:       raw,
	}, nil
}
