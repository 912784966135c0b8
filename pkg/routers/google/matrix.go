package google

import (
	"context"
	"strings"

	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// MatrixOptions are the Distance Matrix API query parameters.
type MatrixOptions struct {
	Avoid                    []string
	Language                 string
	Region                   string
	Units                    string
	ArrivalTime              string
	DepartureTime            string
	TrafficModel             string
	TransitMode              []string
	TransitRoutingPreference string
}

func (o MatrixOptions) params(p *httpclient.Params) {
	DirectionsOptions{
		Avoid:                    o.Avoid,
		Language:                 o.Language,
		Region:                   o.Region,
		Units:                    o.Units,
		ArrivalTime:              o.ArrivalTime,
		DepartureTime:            o.DepartureTime,
		TrafficModel:             o.TrafficModel,
		TransitMode:              o.TransitMode,
		TransitRoutingPreference: o.TransitRoutingPreference,
	}.params(p)
}

type matrixResponse struct {
	Rows []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration value  `json:"duration"`
			Distance value  `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

// Matrix requests durations and distances with default options.
func (r *Router) Matrix(ctx context.Context, req routing.MatrixRequest) (*routing.Matrix, error) {
	return r.MatrixWithOptions(ctx, req, MatrixOptions{})
}

// MatrixWithOptions requests a matrix from the Distance Matrix API.
// Elements whose status is not OK are left nil.
func (r *Router) MatrixWithOptions(ctx context.Context, req routing.MatrixRequest, opts MatrixOptions) (*routing.Matrix, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	lang, err := api.Language(opts.Language)
	if err != nil {
		return nil, err
	}
	opts.Language = lang
	if err := r.RequireAPIKey(); err != nil {
		return nil, err
	}

	params := r.params()
	params.Add("origins", joinLatLons(api.Pick(req.Locations, req.Sources)))
	params.Add("destinations", joinLatLons(api.Pick(req.Locations, req.Destinations)))
	params.Add("mode", api.Profile(req.Profile, DefaultProfile))
	opts.params(&params)

	var resp matrixResponse
	raw, err := r.Execute(ctx, "matrix", &httpclient.Request{
		Path:   "/distancematrix/json",
		Params: params,
		Check:  r.checkStatus,
		DryRun: req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}

	matrix := &routing.Matrix{
		Durations: make([][]*float64, len(resp.Rows)),
		Distances: make([][]*float64, len(resp.Rows)),
		Raw:       raw,
	}
	for i, row := range resp.Rows {
		matrix.Durations[i] = make([]*float64, len(row.Elements))
		matrix.Distances[i] = make([]*float64, len(row.Elements))
		for j, el := range row.Elements {
			if !strings.EqualFold(el.Status, StatusOK) {
				continue
			}
			duration, distance := el.Duration.Value, el.Distance.Value
			matrix.Durations[i][j] = &duration
			matrix.Distances[i][j] = &distance
		}
	}
	return matrix, nil
}
