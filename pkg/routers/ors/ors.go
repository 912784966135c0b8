// Package ors adapts the openrouteservice API to the routekit model.
package ors

import (
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

const (
	// Name is the registry name of the adapter.
	Name = "ors"

	// DefaultBaseURL is the public openrouteservice API.
	DefaultBaseURL = "https://api.openrouteservice.org"

	// DefaultProfile is used when a request has no profile.
	DefaultProfile = "driving-car"
)

// Router talks to openrouteservice.
type Router struct {
	*api.BaseProvider
}

var (
	_ routing.Directioner = (*Router)(nil)
	_ routing.Isochroner  = (*Router)(nil)
	_ routing.Matrixer    = (*Router)(nil)
	_ routing.Optimizer   = (*Router)(nil)
)

// New creates an openrouteservice router. The public API requires a key;
// self-hosted instances (set Client.BaseURL) usually do not.
func New(config api.ProviderConfig) (*Router, error) {
	base, err := api.NewBaseProvider(Name, DefaultBaseURL, config)
	if err != nil {
		return nil, err
	}
	return &Router{BaseProvider: base}, nil
}

// headers carries the API key in the Authorization header.
func (r *Router) headers() map[string]string {
	if r.APIKey() == "" {
		return nil
	}
	return map[string]string{"Authorization": r.APIKey()}
}
