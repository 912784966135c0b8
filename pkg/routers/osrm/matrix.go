package osrm

import (
	"context"
	"fmt"

	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// MatrixOptions are the OSRM table service parameters.
type MatrixOptions struct {
	Radiuses []float64
	Bearings [][2]int

	// Annotations selects duration and/or distance (default both).
	Annotations []string

	// FallbackSpeed estimates unreachable pairs by crow-fly distance, in m/s.
	FallbackSpeed *float64

	// ScaleFactor scales the durations.
	ScaleFactor *float64
}

func (o MatrixOptions) params(req routing.MatrixRequest) httpclient.Params {
	var p httpclient.Params
	if len(req.Sources) > 0 {
		p.Add("sources", api.JoinInts(req.Sources, ";"))
	}
	if len(req.Destinations) > 0 {
		p.Add("destinations", api.JoinInts(req.Destinations, ";"))
	}
	if len(o.Radiuses) > 0 {
		p.Add("radiuses", api.JoinRadiuses(o.Radiuses))
	}
	if len(o.Bearings) > 0 {
		p.Add("bearings", api.JoinBearings(o.Bearings))
	}
	annotations := o.Annotations
	if len(annotations) == 0 {
		annotations = []string{"duration", "distance"}
	}
	p.Add("annotations", joinStrings(annotations))
	if o.FallbackSpeed != nil {
		p.Add("fallback_speed", routing.FormatFloat(*o.FallbackSpeed))
	}
	if o.ScaleFactor != nil {
		p.Add("scale_factor", routing.FormatFloat(*o.ScaleFactor))
	}
	return p
}

type tableResponse struct {
	Durations [][]*float64 `json:"durations"`
	Distances [][]*float64 `json:"distances"`
}

// Matrix requests durations and distances with default options.
func (r *Router) Matrix(ctx context.Context, req routing.MatrixRequest) (*routing.Matrix, error) {
	return r.MatrixWithOptions(ctx, req, MatrixOptions{})
}

// MatrixWithOptions requests a table from the table service.
func (r *Router) MatrixWithOptions(ctx context.Context, req routing.MatrixRequest, opts MatrixOptions) (*routing.Matrix, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/table/v1/%s/%s", api.Profile(req.Profile, DefaultProfile), routing.JoinLocations(req.Locations))

	var resp tableResponse
	raw, err := r.Execute(ctx, "matrix", &httpclient.Request{
		Path:   path,
		Params: opts.params(req),
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
