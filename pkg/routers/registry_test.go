package routers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"google", "graphhopper", "mapbox", "ors", "osrm", "valhalla"}, Names())
}

func TestGetRouterByName(t *testing.T) {
	tests := []struct {
		name     string
		lookup   string
		wantName string
		wantCaps []string
	}{
		{
			name:     "osrm",
			lookup:   "osrm",
			wantName: "osrm",
			wantCaps: []string{routing.CapabilityDirections, routing.CapabilityMatrix},
		},
		{
			name:     "alias",
			lookup:   "openrouteservice",
			wantName: "ors",
			wantCaps: []string{
				routing.CapabilityDirections,
				routing.CapabilityIsochrones,
				routing.CapabilityMatrix,
				routing.CapabilityOptimization,
			},
		},
		{
			name:     "case insensitive",
			lookup:   "Valhalla",
			wantName: "valhalla",
			wantCaps: []string{
				routing.CapabilityDirections,
				routing.CapabilityIsochrones,
				routing.CapabilityMatrix,
				routing.CapabilityExpansion,
			},
		},
		{
			name:     "mapbox osrm alias",
			lookup:   "mapbox_osrm",
			wantName: "mapbox",
			wantCaps: []string{routing.CapabilityDirections, routing.CapabilityIsochrones, routing.CapabilityMatrix},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, err := GetRouterByName(tt.lookup)
			require.NoError(t, err)

			router, err := factory(api.ProviderConfig{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, router.Name())
			assert.Equal(t, tt.wantCaps, routing.Capabilities(router))
		})
	}
}

func TestGetRouterByName_Unknown(t *testing.T) {
	_, err := GetRouterByName("here")

	var notFound *routeerrors.RouterNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "here", notFound.Name)
	assert.Contains(t, notFound.Available, "osrm")
}

func TestNew(t *testing.T) {
	router, err := New("graphhopper", api.ProviderConfig{APIKey: "k"})
	require.NoError(t, err)
	_, ok := router.(routing.Isochroner)
	assert.True(t, ok)
	_, ok = router.(routing.Expander)
	assert.False(t, ok)
}

func TestRegistry_Custom(t *testing.T) {
	r := NewRegistry()
	r.Register("Custom", func(c api.ProviderConfig) (routing.Router, error) {
		return Default().New("osrm", c)
	})
	r.Alias("mine", "custom")

	assert.Equal(t, []string{"custom"}, r.Names())
	assert.Equal(t, "custom", r.Canonical("MINE"))

	router, err := r.New("mine", api.ProviderConfig{})
	require.NoError(t, err)
	assert.Equal(t, "osrm", router.Name())
}
