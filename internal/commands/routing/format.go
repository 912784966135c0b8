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
	"time"

	"github.com/tombee/routekit/pkg/routing"
)

// formatDistance renders meters as "850 m" or "12.35 km".
func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

// formatDuration renders seconds as a Go duration rounded to the second.
func formatDuration(seconds float64) string {
	return (time.Duration(math.Round(seconds)) * time.Second).String()
}

// formatInterval renders an isochrone or expansion interval in its unit.
func formatInterval(value float64, intervalType string) string {
	if routing.NormalizeIntervalType(intervalType) == routing.IntervalDistance {
		return formatDistance(value)
	}
	return formatDuration(value)
}

// formatCell renders one matrix cell; nil is an unreachable pair.
func formatCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
