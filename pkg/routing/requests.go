// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routing

import (
	"fmt"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

// Interval types for isochrones and expansions.
const (
	IntervalTime     = "time"
	IntervalDistance = "distance"
)

// DirectionsRequest asks for a route through Locations in order.
type DirectionsRequest struct {
	Locations []Location

	// Profile is the provider's mode of transport (e.g., "driving",
	// "auto", "driving-car"). Empty selects the adapter default.
	Profile string

	// Alternatives requests alternative routes where supported.
	Alternatives bool

	// DryRun prints the request instead of sending it.
	DryRun bool
}

// Validate checks the request.
func (r DirectionsRequest) Validate() error {
	return ValidateLocations(r.Locations, 2)
}

// IsochronesRequest asks for reachability polygons around Location.
type IsochronesRequest struct {
	Location Location
	Profile  string

	// Intervals are seconds for IntervalTime and meters for
	// IntervalDistance.
	Intervals []float64

	// IntervalType defaults to IntervalTime.
	IntervalType string

	DryRun bool
}

// Validate checks the request.
func (r IsochronesRequest) Validate() error {
	return validateReach(r.Location, r.Intervals, r.IntervalType)
}

// MatrixRequest asks for travel times and distances between locations.
type MatrixRequest struct {
	Locations []Location
	Profile   string

	// Sources and Destinations index into Locations. Empty means all.
	Sources      []int
	Destinations []int

	DryRun bool
}

// Validate checks the request.
func (r MatrixRequest) Validate() error {
	if err := ValidateLocations(r.Locations, 2); err != nil {
		return err
	}
	if err := validateIndices("sources", r.Sources, len(r.Locations)); err != nil {
		return err
	}
	return validateIndices("destinations", r.Destinations, len(r.Locations))
}

// ExpansionRequest asks for the graph edges explored from Location.
type ExpansionRequest struct {
	Location     Location
	Profile      string
	Intervals    []float64
	IntervalType string
	DryRun       bool
}

// Validate checks the request.
func (r ExpansionRequest) Validate() error {
	return validateReach(r.Location, r.Intervals, r.IntervalType)
}

// Job is a stop to be served in an optimization problem.
type Job struct {
	ID       int      `json:"id"`
	Location Location `json:"location"`

	// Service is the time spent at the stop, in seconds.
	Service int `json:"service,omitempty"`

	Amount      []int    `json:"amount,omitempty"`
	Skills      []int    `json:"skills,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	TimeWindows [][2]int `json:"time_windows,omitempty"`
}

// Vehicle serves jobs in an optimization problem.
type Vehicle struct {
	ID         int       `json:"id"`
	Profile    string    `json:"profile"`
	Start      *Location `json:"start,omitempty"`
	End        *Location `json:"end,omitempty"`
	Capacity   []int     `json:"capacity,omitempty"`
	Skills     []int     `json:"skills,omitempty"`
	TimeWindow *[2]int   `json:"time_window,omitempty"`
}

// OptimizationRequest is a vehicle routing problem.
type OptimizationRequest struct {
	Jobs     []Job
	Vehicles []Vehicle
	DryRun   bool
}

// Validate checks the request.
func (r OptimizationRequest) Validate() error {
	if len(r.Jobs) == 0 {
		return &routeerrors.ValidationError{Field: "jobs", Message: "at least one job is required"}
	}
	if len(r.Vehicles) == 0 {
		return &routeerrors.ValidationError{Field: "vehicles", Message: "at least one vehicle is required"}
	}
	for i, job := range r.Jobs {
		if err := job.Location.Validate(); err != nil {
			return &routeerrors.ValidationError{
				Field:   "jobs",
				Message: fmt.Sprintf("the %d%s job has an invalid location: %v", i+1, Ordinal(i+1), err),
			}
		}
	}
	for i, v := range r.Vehicles {
		if v.Start == nil && v.End == nil {
			return &routeerrors.ValidationError{
				Field:   "vehicles",
				Message: fmt.Sprintf("the %d%s vehicle needs a start or an end", i+1, Ordinal(i+1)),
			}
		}
	}
	return nil
}

// NormalizeIntervalType returns IntervalTime for an empty type.
func NormalizeIntervalType(t string) string {
	if t == "" {
		return IntervalTime
	}
	return t
}

func validateReach(loc Location, intervals []float64, intervalType string) error {
	if err := loc.Validate(); err != nil {
		return &routeerrors.ValidationError{Field: "location", Message: err.Error()}
	}
	if len(intervals) == 0 {
		return &routeerrors.ValidationError{
			Field:      "intervals",
			Message:    "at least one interval is required",
			Suggestion: "pass intervals in seconds, e.g. 300,600",
		}
	}
	for i, v := range intervals {
		if v <= 0 {
			return &routeerrors.ValidationError{
				Field:   "intervals",
				Message: fmt.Sprintf("the %d%s interval must be > 0, got %v", i+1, Ordinal(i+1), v),
			}
		}
	}
	switch NormalizeIntervalType(intervalType) {
	case IntervalTime, IntervalDistance:
		return nil
	default:
		return &routeerrors.ValidationError{
			Field:      "interval_type",
			Message:    fmt.Sprintf("unknown interval type %q", intervalType),
			Suggestion: "use \"time\" or \"distance\"",
		}
	}
}

func validateIndices(field string, indices []int, n int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return &routeerrors.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("index %d is out of range for %d locations", idx, n),
			}
		}
	}
	return nil
}
