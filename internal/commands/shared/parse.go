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

package shared

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tombee/routekit/pkg/routing"
)

// RequireFlag returns a usage error when a required flag is empty.
func RequireFlag(flag, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewUsageError(fmt.Sprintf("required flag --%s not set", flag), nil)
	}
	return nil
}

// ParseFloats parses a comma-separated list such as "300,600".
func ParseFloats(flag, s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, NewUsageError(fmt.Sprintf("--%s: the %d%s value %q is not a number", flag, i+1, routing.Ordinal(i+1), f), nil)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseInts parses a comma-separated list of indices such as "0,2".
func ParseInts(flag, s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, NewUsageError(fmt.Sprintf("--%s: the %d%s value %q is not an integer", flag, i+1, routing.Ordinal(i+1), f), nil)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseLocationsFlag parses "lon,lat;lon,lat" and maps errors to usage
// errors.
func ParseLocationsFlag(flag, s string) ([]routing.Location, error) {
	locations, err := routing.ParseLocations(s)
	if err != nil {
		return nil, NewUsageError("--"+flag, err)
	}
	return locations, nil
}

// ParseLocationFlag parses a single "lon,lat".
func ParseLocationFlag(flag, s string) (routing.Location, error) {
	loc, err := routing.ParseLocation(s)
	if err != nil {
		return routing.Location{}, NewUsageError("--"+flag, err)
	}
	return loc, nil
}
