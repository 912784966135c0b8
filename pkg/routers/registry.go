// Package routers is the registry of routekit's provider adapters.
//
// Adapters are looked up by name:
//
//	router, err := routers.New("valhalla", api.ProviderConfig{})
//	if err != nil {
//	    return err
//	}
//	if d, ok := router.(routing.Directioner); ok {
//	    directions, err := d.Directions(ctx, req)
//	    ...
//	}
package routers

import (
	"sort"
	"strings"
	"sync"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routers/google"
	"github.com/tombee/routekit/pkg/routers/graphhopper"
	"github.com/tombee/routekit/pkg/routers/mapbox"
	"github.com/tombee/routekit/pkg/routers/ors"
	"github.com/tombee/routekit/pkg/routers/osrm"
	"github.com/tombee/routekit/pkg/routers/valhalla"
	"github.com/tombee/routekit/pkg/routing"
)

// Factory creates a router from its configuration.
type Factory func(config api.ProviderConfig) (routing.Router, error)

// Registry maps names to router factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	aliases   map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		aliases:   make(map[string]string),
	}
}

// Register adds a factory. Registering the same name twice overwrites the
// previous factory.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(name)] = factory
}

// Alias makes alias resolve to the factory registered as name.
func (r *Registry) Alias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToLower(name)
}

// Names returns the registered names, sorted alphabetically. Aliases are
// not included.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Canonical resolves an alias to its registered name. Lookup is case
// insensitive.
func (r *Registry) Canonical(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.canonical(name)
}

func (r *Registry) canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := r.aliases[name]; ok {
		return target
	}
	return name
}

// Get returns the factory registered under name or one of its aliases.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[r.canonical(name)]
	if !ok {
		available := make([]string, 0, len(r.factories))
		for n := range r.factories {
			available = append(available, n)
		}
		sort.Strings(available)
		return nil, &routeerrors.RouterNotFoundError{Name: name, Available: available}
	}
	return factory, nil
}

// New creates the router registered under name.
func (r *Registry) New(name string, config api.ProviderConfig) (routing.Router, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return factory(config)
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(google.Name, func(c api.ProviderConfig) (routing.Router, error) { return google.New(c) })
	r.Register(graphhopper.Name, func(c api.ProviderConfig) (routing.Router, error) { return graphhopper.New(c) })
	r.Register(mapbox.Name, func(c api.ProviderConfig) (routing.Router, error) { return mapbox.New(c) })
	r.Register(ors.Name, func(c api.ProviderConfig) (routing.Router, error) { return ors.New(c) })
	r.Register(osrm.Name, func(c api.ProviderConfig) (routing.Router, error) { return osrm.New(c) })
	r.Register(valhalla.Name, func(c api.ProviderConfig) (routing.Router, error) { return valhalla.New(c) })

	r.Alias("openrouteservice", ors.Name)
	r.Alias("mapbox_osrm", mapbox.Name)
	r.Alias("mapbox-osrm", mapbox.Name)
	r.Alias("googlemaps", google.Name)
	return r
}

// Default returns the registry holding the built-in adapters.
func Default() *Registry {
	return defaultRegistry
}

// Names lists the built-in adapters.
func Names() []string {
	return defaultRegistry.Names()
}

// GetRouterByName returns the factory of a built-in adapter, or a
// RouterNotFoundError.
func GetRouterByName(name string) (Factory, error) {
	return defaultRegistry.Get(name)
}

// New creates a built-in adapter by name.
func New(name string, config api.ProviderConfig) (routing.Router, error) {
	return defaultRegistry.New(name, config)
}
