package mapbox

import (
	"context"
	"fmt"

	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// MatrixOptions are the Matrix API query parameters.
type MatrixOptions struct {
	// Annotations selects duration and/or distance (default both).
	Annotations []string

	// FallbackSpeed estimates unreachable pairs by crow-fly distance, in
	// km/h.
	FallbackSpeed *float64

	// DepartTime is YYYY-MM-DDThh:mm for driving-traffic.
	DepartTime string
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// Matrix requests durations and distances with default options.
func (r *Router) Matrix(ctx context.Context, req routing.MatrixRequest) (*routing.Matrix, error) {
	return r.MatrixWithOptions(ctx, req, MatrixOptions{})
}

// MatrixWithOptions requests a matrix from the Matrix API.
func (r *Router) MatrixWithOptions(ctx context.Context, req routing.MatrixRequest, opts MatrixOptions) (*routing.Matrix, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := r.RequireAPIKey(); err != nil {
		return nil, err
	}

	params := r.params()
	if len(req.Sources) > 0 {
		params.Add("sources", api.JoinInts(req.Sources, ";"))
	}
	if len(req.Destinations) > 0 {
		params.Add("destinations", api.JoinInts(req.Destinations, ";"))
	}
	annotations := opts.Annotations
	if len(annotations) == 0 {
		annotations = []string{"duration", "distance"}
	}
	params.Add("annotations", joinStrings(annotations))
	if opts.FallbackSpeed != nil {
		params.Add("fallback_speed", routing.FormatFloat(*opts.FallbackSpeed))
	}
	if opts.DepartTime != "" {
		params.Add("depart_at", opts.DepartTime)
	}

	path := fmt.Sprintf("/directions-matrix/v1/%s/%s", profilePath(req.Profile), routing.JoinLocations(req.Locations))

	var resp matrixResponse
	raw, err := r.Execute(ctx, "matrix", &httpclient.Request{
		Path:   path,
		Params: params,
		Check:  r.checkCode,
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	return &routing.Matrix{
		Durations: resp.Durations,
		Distances: resp.Distances,
		Raw:       raw,
	}, nil
}
