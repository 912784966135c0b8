// Package valhalla adapts the Valhalla routing API to the routekit model.
package valhalla

import (
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

const (
	// Name is the registry name of the adapter.
	Name = "valhalla"

	// DefaultBaseURL is the FOSSGIS Valhalla instance.
	DefaultBaseURL = "https://valhalla1.openstreetmap.de"

	// DefaultProfile is the costing model used when a request has none.
	DefaultProfile = "auto"
)

// Router talks to a Valhalla server.
type Router struct {
	*api.BaseProvider
}

var (
	_ routing.Directioner = (*Router)(nil)
	_ routing.Isochroner  = (*Router)(nil)
	_ routing.Matrixer    = (*Router)(nil)
	_ routing.Expander    = (*Router)(nil)
)

// New creates a Valhalla router. The API key is only sent when set, as
// the "api_key" query parameter used by hosted deployments.
func New(config api.ProviderConfig) (*Router, error) {
	base, err := api.NewBaseProvider(Name, DefaultBaseURL, config)
	if err != nil {
		return nil, err
	}
	return &Router{BaseProvider: base}, nil
}

// DateTime selects departure or arrival time. Type is 0 (current),
// 1 (depart at), 2 (arrive by) or 3 (invariant); Value is
// YYYY-MM-DDTHH:MM local time.
type DateTime struct {
	Type  int    `json:"type"`
	Value string `json:"value,omitempty"`
}

// location is the Valhalla wire form of a point.
type location struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func toLocations(locs []routing.Location) []location {
	out := make([]location, len(locs))
	for i, l := range locs {
		out[i] = location{Lon: l.Lon, Lat: l.Lat}
	}
	return out
}

func (r *Router) params() httpclient.Params {
	var p httpclient.Params
	if key := r.APIKey(); key != "" {
		p.Add("api_key", key)
	}
	return p
}

// costingOptions nests options under the costing model name, as the API
// expects: {"auto": {...}}.
func costingOptions(costing string, options map[string]any) map[string]any {
	if len(options) == 0 {
		return nil
	}
	return map[string]any{costing: options}
}

// lengthFactor converts a response length unit to meters. Valhalla
// reports kilometers unless miles were requested.
func lengthFactor(units string) float64 {
	switch units {
	case "mi", "miles":
		return 1609.344
	default:
		return 1000
	}
}
