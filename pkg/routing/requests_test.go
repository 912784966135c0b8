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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

var heidelberg = []Location{{8.688641, 49.420577}, {8.680916, 49.415776}}

func TestDirectionsRequest_Validate(t *testing.T) {
	assert.NoError(t, DirectionsRequest{Locations: heidelberg}.Validate())
	assert.Error(t, DirectionsRequest{Locations: heidelberg[:1]}.Validate())
}

func TestIsochronesRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     IsochronesRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  IsochronesRequest{Location: heidelberg[0], Intervals: []float64{300, 600}},
		},
		{
			name: "distance",
			req:  IsochronesRequest{Location: heidelberg[0], Intervals: []float64{1000}, IntervalType: IntervalDistance},
		},
		{
			name:    "no intervals",
			req:     IsochronesRequest{Location: heidelberg[0]},
			wantErr: "at least one interval",
		},
		{
			name:    "negative interval",
			req:     IsochronesRequest{Location: heidelberg[0], Intervals: []float64{300, -1}},
			wantErr: "the 2nd interval",
		},
		{
			name:    "bad type",
			req:     IsochronesRequest{Location: heidelberg[0], Intervals: []float64{300}, IntervalType: "energy"},
			wantErr: "unknown interval type",
		},
		{
			name:    "bad location",
			req:     IsochronesRequest{Location: Location{0, 100}, Intervals: []float64{300}},
			wantErr: "latitude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var valErr *routeerrors.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatrixRequest_Validate(t *testing.T) {
	assert.NoError(t, MatrixRequest{Locations: heidelberg, Sources: []int{0}, Destinations: []int{1}}.Validate())

	err := MatrixRequest{Locations: heidelberg, Destinations: []int{2}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destinations")
}

func TestExpansionRequest_Validate(t *testing.T) {
	assert.NoError(t, ExpansionRequest{Location: heidelberg[0], Intervals: []float64{60}}.Validate())
	assert.Error(t, ExpansionRequest{Location: heidelberg[0]}.Validate())
}

func TestOptimizationRequest_Validate(t *testing.T) {
	start := heidelberg[0]
	valid := OptimizationRequest{
		Jobs:     []Job{{ID: 1, Location: heidelberg[1]}},
		Vehicles: []Vehicle{{ID: 1, Profile: "driving-car", Start: &start}},
	}
	assert.NoError(t, valid.Validate())

	noJobs := valid
	noJobs.Jobs = nil
	assert.Error(t, noJobs.Validate())

	noStart := valid
	noStart.Vehicles = []Vehicle{{ID: 1, Profile: "driving-car"}}
	err := noStart.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the 1st vehicle")
}

func TestNormalizeIntervalType(t *testing.T) {
	assert.Equal(t, IntervalTime, NormalizeIntervalType(""))
	assert.Equal(t, IntervalDistance, NormalizeIntervalType(IntervalDistance))
}
