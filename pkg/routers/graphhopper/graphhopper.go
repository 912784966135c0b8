// Package graphhopper adapts the GraphHopper Directions API to the
// routekit model.
package graphhopper

import (
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

const (
	// Name is the registry name of the adapter.
	Name = "graphhopper"

	// DefaultBaseURL is the hosted GraphHopper API.
	DefaultBaseURL = "https://graphhopper.com/api/1"

	// DefaultProfile is used when a request has no profile.
	DefaultProfile = "car"
)

// Router talks to GraphHopper.
type Router struct {
	*api.BaseProvider
}

var (
	_ routing.Directioner = (*Router)(nil)
	_ routing.Isochroner  = (*Router)(nil)
	_ routing.Matrixer    = (*Router)(nil)
)

// New creates a GraphHopper router. The hosted API needs a key, sent as
// the "key" query parameter.
func New(config api.ProviderConfig) (*Router, error) {
	base, err := api.NewBaseProvider(Name, DefaultBaseURL, config)
	if err != nil {
		return nil, err
	}
	return &Router{BaseProvider: base}, nil
}

func (r *Router) params() httpclient.Params {
	var p httpclient.Params
	if key := r.APIKey(); key != "" {
		p.Add("key", key)
	}
	return p
}
