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
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

// Location is a WGS84 coordinate.
type Location struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// NewLocation returns the location at lon, lat.
func NewLocation(lon, lat float64) Location {
	return Location{Lon: lon, Lat: lat}
}

// LocationFromPoint converts an orb point (lon, lat).
func LocationFromPoint(p orb.Point) Location {
	return Location{Lon: p.Lon(), Lat: p.Lat()}
}

// Point returns the location as an orb point.
func (l Location) Point() orb.Point {
	return orb.Point{l.Lon, l.Lat}
}

// LonLat returns the location as [lon, lat].
func (l Location) LonLat() []float64 {
	return []float64{l.Lon, l.Lat}
}

// String formats the location as "lon,lat", the form OSRM, Mapbox and the
// CLI use.
func (l Location) String() string {
	return FormatFloat(l.Lon) + "," + FormatFloat(l.Lat)
}

// LatLonString formats the location as "lat,lon" for Google and
// GraphHopper.
func (l Location) LatLonString() string {
	return FormatFloat(l.Lat) + "," + FormatFloat(l.Lon)
}

// Validate checks that the coordinate is finite and in range.
func (l Location) Validate() error {
	if math.IsNaN(l.Lon) || math.IsNaN(l.Lat) || math.IsInf(l.Lon, 0) || math.IsInf(l.Lat, 0) {
		return fmt.Errorf("coordinate must be finite")
	}
	if l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("longitude %v is outside [-180, 180]", l.Lon)
	}
	if l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("latitude %v is outside [-90, 90]", l.Lat)
	}
	return nil
}

// ValidateLocations checks a location list. It requires at least min
// entries and reports invalid entries by position, e.g. "the 2nd location".
func ValidateLocations(locations []Location, min int) error {
	if len(locations) < min {
		return &routeerrors.ValidationError{
			Field:      "locations",
			Message:    fmt.Sprintf("at least %d locations are required, got %d", min, len(locations)),
			Suggestion: "pass locations as \"lon,lat;lon,lat\"",
		}
	}
	for i, loc := range locations {
		if err := loc.Validate(); err != nil {
			return &routeerrors.ValidationError{
				Field:   "locations",
				Message: fmt.Sprintf("the %d%s location is invalid: %v", i+1, Ordinal(i+1), err),
			}
		}
	}
	return nil
}

// ParseLocation parses "lon,lat".
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("location %q must be \"lon,lat\"", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q: invalid longitude: %w", s, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q: invalid latitude: %w", s, err)
	}
	return Location{Lon: lon, Lat: lat}, nil
}

// ParseLocations parses "lon,lat;lon,lat;...".
func ParseLocations(s string) ([]Location, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ";")
	locations := make([]Location, 0, len(fields))
	for i, field := range fields {
		loc, err := ParseLocation(field)
		if err != nil {
			return nil, fmt.Errorf("the %d%s location: %w", i+1, Ordinal(i+1), err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// JoinLocations formats locations as "lon,lat;lon,lat".
func JoinLocations(locations []Location) string {
	parts := make([]string, len(locations))
	for i, loc := range locations {
		parts[i] = loc.String()
	}
	return strings.Join(parts, ";")
}

// FormatFloat formats a coordinate or parameter with the shortest
// representation that round-trips.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
