package ors

import (
	"context"
	"fmt"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/polyline"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

// OptimizationOptions are the openrouteservice optimization body fields.
type OptimizationOptions struct {
	// Geometry adds route geometries to the solution.
	Geometry bool
}

type job struct {
	ID          int       `json:"id"`
	Location    []float64 `json:"location"`
	Service     int       `json:"service,omitempty"`
	Amount      []int     `json:"amount,omitempty"`
	Skills      []int     `json:"skills,omitempty"`
	Priority    int       `json:"priority,omitempty"`
	TimeWindows [][2]int  `json:"time_windows,omitempty"`
}

type vehicle struct {
	ID         int       `json:"id"`
	Profile    string    `json:"profile"`
	Start      []float64 `json:"start,omitempty"`
	End        []float64 `json:"end,omitempty"`
	Capacity   []int     `json:"capacity,omitempty"`
	Skills     []int     `json:"skills,omitempty"`
	TimeWindow *[2]int   `json:"time_window,omitempty"`
}

type optimizationBody struct {
	Jobs     []job          `json:"jobs"`
	Vehicles []vehicle      `json:"vehicles"`
	Options  map[string]any `json:"options,omitempty"`
}

type optimizationResponse struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Summary struct {
		Cost     float64 `json:"cost"`
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
	} `json:"summary"`
	Unassigned []struct {
		ID int `json:"id"`
	} `json:"unassigned"`
	Routes []struct {
		Vehicle  int     `json:"vehicle"`
		Cost     float64 `json:"cost"`
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
		Geometry string  `json:"geometry"`
		Steps    []struct {
			Type     string    `json:"type"`
			Job      int       `json:"job"`
			Location []float64 `json:"location"`
			Arrival  float64   `json:"arrival"`
			Duration float64   `json:"duration"`
		} `json:"steps"`
	} `json:"routes"`
}

// Optimization solves a vehicle routing problem with default options.
func (r *Router) Optimization(ctx context.Context, req routing.OptimizationRequest) (*routing.Optimization, error) {
	return r.OptimizationWithOptions(ctx, req, OptimizationOptions{})
}

// OptimizationWithOptions solves a vehicle routing problem with the
// optimization service (VROOM).
func (r *Router) OptimizationWithOptions(ctx context.Context, req routing.OptimizationRequest, opts OptimizationOptions) (*routing.Optimization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body := optimizationBody{
		Jobs:     make([]job, len(req.Jobs)),
		Vehicles: make([]vehicle, len(req.Vehicles)),
	}
	for i, j := range req.Jobs {
		body.Jobs[i] = job{
			ID:          j.ID,
			Location:    j.Location.LonLat(),
			Service:     j.Service,
			Amount:      j.Amount,
			Skills:      j.Skills,
			Priority:    j.Priority,
			TimeWindows: j.TimeWindows,
		}
	}
	for i, v := range req.Vehicles {
		wire := vehicle{
			ID:         v.ID,
			Profile:    api.Profile(v.Profile, DefaultProfile),
			Capacity:   v.Capacity,
			Skills:     v.Skills,
			TimeWindow: v.TimeWindow,
		}
		if v.Start != nil {
			wire.Start = v.Start.LonLat()
		}
		if v.End != nil {
			wire.End = v.End.LonLat()
		}
		body.Vehicles[i] = wire
	}
	if opts.Geometry {
		body.Options = map[string]any{"g": true}
	}

	var resp optimizationResponse
	raw, err := r.Execute(ctx, "optimization", &httpclient.Request{
		Path:    "/optimization",
		JSON:    body,
		Headers: r.headers(),
		DryRun:  req.DryRun,
	}, &resp)
	if err != nil || raw == nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%s optimization: %w", Name, r.APIError(200, fmt.Sprintf("code %d: %s", resp.Code, resp.Error)))
	}

	result := &routing.Optimization{
		Cost:       resp.Summary.Cost,
		Duration:   resp.Summary.Duration,
		Distance:   resp.Summary.Distance,
		Unassigned: make([]int, 0, len(resp.Unassigned)),
		Raw:        raw,
	}
	for _, u := range resp.Unassigned {
		result.Unassigned = append(result.Unassigned, u.ID)
	}
	for _, route := range resp.Routes {
		out := routing.OptimizedRoute{
			Vehicle:  route.Vehicle,
			Cost:     route.Cost,
			Duration: route.Duration,
			Distance: route.Distance,
		}
		if route.Geometry != "" {
			geometry, err := polyline.Decode(route.Geometry, polyline.Options{Precision: 5})
			if err != nil {
				return nil, routeerrors.Wrapf(err, "%s optimization", Name)
			}
			out.Geometry = geometry
		}
		for _, step := range route.Steps {
			out.Steps = append(out.Steps, routing.OptimizedStep{
				Type:     step.Type,
				Job:      step.Job,
				Location: step.Location,
				Arrival:  step.Arrival,
				Duration: step.Duration,
			})
		}
		result.Routes = append(result.Routes, out)
	}
	return result, nil
}
