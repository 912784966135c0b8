package valhalla

import (
	"context"

	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// MatrixOptions are the Valhalla sources_to_targets request fields.
type MatrixOptions struct {
	Options map[string]any

	// Units of distances: kilometers or miles. Converted to meters.
	Units string

	DateTime *DateTime
	ID       string
}

type matrixBody struct {
	Sources        []location     `json:"sources"`
	Targets        []location     `json:"targets"`
	Costing        string         `json:"costing"`
	CostingOptions map[string]any `json:"costing_options,omitempty"`
	Units          string         `json:"units,omitempty"`
	DateTime       *DateTime      `json:"date_time,omitempty"`
	ID             string         `json:"id,omitempty"`
}

type matrixCell struct {
	Time     *float64 `json:"time"`
	Distance *float64 `json:"distance"`
}

type matrixResponse struct {
	SourcesToTargets [][]*matrixCell `json:"sources_to_targets"`
}

// Matrix requests durations and distances with default options.
func (r *Router) Matrix(ctx context.Context, req routing.MatrixRequest) (*routing.Matrix, error) {
	return r.MatrixWithOptions(ctx, req, MatrixOptions{})
}

// MatrixWithOptions requests a matrix from the sources_to_targets service.
func (r *Router) MatrixWithOptions(ctx context.Context, req routing.MatrixRequest, opts MatrixOptions) (*routing.Matrix, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	costing := api.Profile(req.Profile, DefaultProfile)

	var resp matrixResponse
	raw, err := r.Execute(ctx, "matrix", &httpclient.Request{
		Path:   "/sources_to_targets",
		Params: r.params(),
		JSON: matrixBody{
			Sources:        toLocations(api.Pick(req.Locations, req.Sources)),
			Targets:        toLocations(api.Pick(req.Locations, req.Destinations)),
			Costing:        costing,
			CostingOptions: costingOptions(costing, opts.Options),
			Units:          opts.Units,
			DateTime:       opts.DateTime,
			ID:             opts.ID,
		},
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	factor := lengthFactor(opts.Units)
	matrix := &routing.Matrix{
		Durations: make([][]*float64, len(resp.SourcesToTargets)),
		Distances: make([][]*float64, len(resp.SourcesToTargets)),
		Raw:       raw,
	}
	for i, row := range resp.SourcesToTargets {
		matrix.Durations[i] = make([]*float64, len(row))
		matrix.Distances[i] = make([]*float64, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			matrix.Durations[i][j] = cell.Time
			if cell.Distance != nil {
				m := *cell.Distance * factor
				matrix.Distances[i][j] = &m
			}
		}
	}
	return matrix, nil
}
