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

import "context"

// Router is a routing service adapter.
type Router interface {
	// Name is the registry name of the adapter (e.g., "osrm").
	Name() string
}

// Directioner computes routes.
type Directioner interface {
	Router
	Directions(ctx context.Context, req DirectionsRequest) (*Directions, error)
}

// Isochroner computes isochrones.
type Isochroner interface {
	Router
	Isochrones(ctx context.Context, req IsochronesRequest) (*Isochrones, error)
}

// Matrixer computes travel time and distance matrices.
type Matrixer interface {
	Router
	Matrix(ctx context.Context, req MatrixRequest) (*Matrix, error)
}

// Expander returns the edges explored by a graph search.
type Expander interface {
	Router
	Expansion(ctx context.Context, req ExpansionRequest) (*Expansions, error)
}

// Optimizer solves vehicle routing problems.
type Optimizer interface {
	Router
	Optimization(ctx context.Context, req OptimizationRequest) (*Optimization, error)
}

// Capability names reported by Capabilities.
const (
	CapabilityDirections   = "directions"
	CapabilityIsochrones   = "isochrones"
	CapabilityMatrix       = "matrix"
	CapabilityExpansion    = "expansion"
	CapabilityOptimization = "optimization"
)

// Capabilities lists the operations r implements.
func Capabilities(r Router) []string {
	var caps []string
	if _, ok := r.(Directioner); ok {
		caps = append(caps, CapabilityDirections)
	}
	if _, ok := r.(Isochroner); ok {
		caps = append(caps, CapabilityIsochrones)
	}
	if _, ok := r.(Matrixer); ok {
		caps = append(caps, CapabilityMatrix)
	}
	if _, ok := r.(Expander); ok {
		caps = append(caps, CapabilityExpansion)
	}
	if _, ok := r.(Optimizer); ok {
		caps = append(caps, CapabilityOptimization)
	}
	return caps
}
