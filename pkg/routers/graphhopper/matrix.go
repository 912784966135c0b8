package graphhopper

import (
	"context"

	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// MatrixOptions are the GraphHopper matrix request fields.
type MatrixOptions struct {
	// OutArrays selects times, distances and/or weights (default times
	// and distances).
	OutArrays []string `json:"out_arrays,omitempty"`

	PointHints      []string `json:"point_hints,omitempty"`
	SnapPreventions []string `json:"snap_preventions,omitempty"`
	Curbsides       []string `json:"curbsides,omitempty"`
}

type matrixBody struct {
	Points     [][]float64 `json:"points,omitempty"`
	FromPoints [][]float64 `json:"from_points,omitempty"`
	ToPoints   [][]float64 `json:"to_points,omitempty"`
	Profile    string      `json:"profile"`

	// FailFast is always false so unreachable pairs come back as null
	// instead of failing the whole request.
	FailFast bool `json:"fail_fast"`
	MatrixOptions
}

type matrixResponse struct {
	Times     [][]*float64 `json:"times"`
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
	if len(opts.OutArrays) == 0 {
		opts.OutArrays = []string{"times", "distances"}
	}

	body := matrixBody{
		Profile:       api.Profile(req.Profile, DefaultProfile),
		MatrixOptions: opts,
	}
	if len(req.Sources) == 0 && len(req.Destinations) == 0 {
		body.Points = api.LonLats(req.Locations)
	} else {
		body.FromPoints = api.LonLats(api.Pick(req.Locations, req.Sources))
		body.ToPoints = api.LonLats(api.Pick(req.Locations, req.Destinations))
	}

	var resp matrixResponse
	raw, err := r.Execute(ctx, "matrix", &httpclient.Request{
		Path:   "/matrix",
		Params: r.params(),
		JSON:   body,
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	return &routing.Matrix{
		Durations: resp.Times,
		Distances: resp.Distances,
		Raw:       raw,
	}, nil
}
