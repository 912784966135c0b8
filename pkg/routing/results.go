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
	"encoding/json"

	"github.com/paulmach/orb"
)

// Direction is one route between the requested locations.
type Direction struct {
	// Geometry is the route shape as [lon, lat] or [lon, lat, elevation].
	Geometry [][]float64 `json:"geometry"`

	// Duration in seconds.
	Duration float64 `json:"duration"`

	// Distance in meters.
	Distance float64 `json:"distance"`
}

// LineString returns the route shape without elevation.
func (d Direction) LineString() orb.LineString {
	return toLineString(d.Geometry)
}

// Directions holds the routes of one directions request. Routes has one
// entry unless alternatives were requested.
type Directions struct {
	Routes []Direction     `json:"routes"`
	Raw    json.RawMessage `json:"-"`
}

// Primary returns the first route. ok is false when there is none.
func (d *Directions) Primary() (Direction, bool) {
	if d == nil || len(d.Routes) == 0 {
		return Direction{}, false
	}
	return d.Routes[0], true
}

// Isochrone is the area reachable from Center within Interval.
type Isochrone struct {
	// Geometry is the outer ring as [lon, lat] pairs.
	Geometry [][]float64 `json:"geometry"`

	// Interval is seconds for time isochrones and meters for distance ones.
	Interval float64 `json:"interval"`

	// IntervalType is IntervalTime or IntervalDistance.
	IntervalType string `json:"interval_type"`

	// Center is the snapped origin as [lon, lat], when the provider reports it.
	Center []float64 `json:"center,omitempty"`
}

// Polygon returns the isochrone as an orb polygon.
func (i Isochrone) Polygon() orb.Polygon {
	ring := orb.Ring(toLineString(i.Geometry))
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// Isochrones holds one isochrone per requested interval.
type Isochrones struct {
	Isochrones []Isochrone     `json:"isochrones"`
	Raw        json.RawMessage `json:"-"`
}

// Matrix holds durations (seconds) and distances (meters) between sources
// and destinations, indexed [source][destination]. A nil cell means the
// pair is unreachable. Either table is nil when it was not requested.
type Matrix struct {
	Durations [][]*float64    `json:"durations,omitempty"`
	Distances [][]*float64    `json:"distances,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

// Edge is one graph edge visited during a search expansion.
type Edge struct {
	Geometry   [][]float64 `json:"geometry"`
	Distance   float64     `json:"distance"`
	Duration   float64     `json:"duration"`
	Cost       float64     `json:"cost"`
	EdgeID     int64       `json:"edge_id"`
	PredEdgeID int64       `json:"pred_edge_id"`
	Status     string      `json:"status,omitempty"`
}

// Expansions holds the edges a router explored from one location.
type Expansions struct {
	Edges []Edge          `json:"edges"`
	Raw   json.RawMessage `json:"-"`
}

// OptimizedStep is one stop of an optimized vehicle route.
type OptimizedStep struct {
	// Type is start, job or end.
	Type     string    `json:"type"`
	Job      int       `json:"job,omitempty"`
	Location []float64 `json:"location,omitempty"`
	Arrival  float64   `json:"arrival"`
	Duration float64   `json:"duration"`
}

// OptimizedRoute is the plan of one vehicle.
type OptimizedRoute struct {
	Vehicle  int             `json:"vehicle"`
	Cost     float64         `json:"cost"`
	Duration float64         `json:"duration"`
	Distance float64         `json:"distance"`
	Steps    []OptimizedStep `json:"steps"`
	Geometry [][]float64     `json:"geometry,omitempty"`
}

// Optimization is the solution of a vehicle routing problem.
type Optimization struct {
	Cost       float64          `json:"cost"`
	Duration   float64          `json:"duration"`
	Distance   float64          `json:"distance"`
	Unassigned []int            `json:"unassigned"`
	Routes     []OptimizedRoute `json:"routes"`
	Raw        json.RawMessage  `json:"-"`
}

func toLineString(coords [][]float64) orb.LineString {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		ls = append(ls, orb.Point{c[0], c[1]})
	}
	return ls
}
