package osrm

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

var heidelberg = []routing.Location{
	{Lon: 8.688641, Lat: 49.420577},
	{Lon: 8.680916, Lat: 49.415776},
}

func newTestRouter(t *testing.T, handler http.HandlerFunc) (*Router, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var dryRun bytes.Buffer
	cfg := httpclient.DefaultConfig(Name, server.URL)
	cfg.DryRunOutput = &dryRun

	router, err := New(api.ProviderConfig{Client: &cfg})
	require.NoError(t, err)
	return router, &dryRun
}

func TestNew_Defaults(t *testing.T) {
	router, err := New(api.ProviderConfig{})
	require.NoError(t, err)
	assert.Equal(t, Name, router.Name())
	assert.Equal(t, DefaultBaseURL, router.Client().Config().BaseURL)
}

func TestDirections(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/route/v1/driving/8.688641,49.420577;8.680916,49.415776", r.URL.Path)
		assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))
		assert.Equal(t, "true", r.URL.Query().Get("alternatives"))

		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [
				{"geometry": "_p~iF~ps|U_ulLnnqC", "duration": 120.5, "distance": 850.2},
				{"geometry": "_p~iF~ps|U", "duration": 140, "distance": 900}
			],
			"waypoints": []
		}`))
	})

	directions, err := router.Directions(context.Background(), routing.DirectionsRequest{
		Locations:    heidelberg,
		Alternatives: true,
	})
	require.NoError(t, err)
	require.Len(t, directions.Routes, 2)

	primary, ok := directions.Primary()
	require.True(t, ok)
	assert.Equal(t, 120.5, primary.Duration)
	assert.Equal(t, 850.2, primary.Distance)
	require.Len(t, primary.Geometry, 2)
	assert.InDeltaSlice(t, []float64{-120.2, 38.5}, primary.Geometry[0], 1e-9)
	assert.InDeltaSlice(t, []float64{-120.95, 40.7}, primary.Geometry[1], 1e-9)
	assert.Contains(t, string(directions.Raw), "waypoints")
}

func TestDirectionsWithOptions_GeoJSON(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/route/v1/cycling/8.688641,49.420577;8.680916,49.415776", r.URL.Path)
		assert.Equal(t, "geojson", q.Get("geometries"))
		assert.Equal(t, "full", q.Get("overview"))
		assert.Equal(t, "unlimited;50", q.Get("radiuses"))
		assert.Equal(t, "0,20;90,45", q.Get("bearings"))
		assert.Equal(t, "duration,distance", q.Get("annotations"))
		assert.Equal(t, "false", q.Get("steps"))

		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"geometry":{"type":"LineString","coordinates":[[8.688641,49.420577],[8.680916,49.415776]]},"duration":60,"distance":700}]}`))
	})

	directions, err := router.DirectionsWithOptions(context.Background(), routing.DirectionsRequest{
		Locations: heidelberg,
		Profile:   "cycling",
	}, DirectionsOptions{
		Geometries:  GeometryGeoJSON,
		Overview:    "full",
		Radiuses:    []float64{-1, 50},
		Bearings:    [][2]int{{0, 20}, {90, 45}},
		Annotations: []string{"duration", "distance"},
		Steps:       api.Bool(false),
	})
	require.NoError(t, err)
	require.Len(t, directions.Routes, 1)
	assert.Equal(t, [][]float64{{8.688641, 49.420577}, {8.680916, 49.415776}}, directions.Routes[0].Geometry)
}

func TestDirections_Polyline6(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{\"code\":\"Ok\",\"routes\":[{\"geometry\":\"aqkg}Aa_iqO`kHxaN\",\"duration\":1,\"distance\":2}]}"))
	})

	directions, err := router.DirectionsWithOptions(context.Background(), routing.DirectionsRequest{Locations: heidelberg},
		DirectionsOptions{Geometries: GeometryPolyline6})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{8.688641, 49.420577}, directions.Routes[0].Geometry[0], 1e-9)
}

func TestDirections_NoRoute(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points"}`))
	})

	_, err := router.Directions(context.Background(), routing.DirectionsRequest{Locations: heidelberg})

	var apiErr *routeerrors.RouterAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "NoRoute")
}

func TestDirections_NonOkCodeInSuccessBody(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoSegment","message":"Could not find a matching segment"}`))
	})

	_, err := router.Directions(context.Background(), routing.DirectionsRequest{Locations: heidelberg})

	var apiErr *routeerrors.RouterAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NoSegment: Could not find a matching segment", apiErr.Message)
}

func TestDirections_ValidatesLocations(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := router.Directions(context.Background(), routing.DirectionsRequest{Locations: heidelberg[:1]})
	var valErr *routeerrors.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestDirections_DryRun(t *testing.T) {
	router, dryRun := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("dry run must not reach the server")
	})

	directions, err := router.Directions(context.Background(), routing.DirectionsRequest{
		Locations: heidelberg,
		DryRun:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, directions)
	assert.Contains(t, dryRun.String(), "/route/v1/driving/8.688641,49.420577;8.680916,49.415776?geometries=polyline")
}

func TestMatrix(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/table/v1/driving/8.688641,49.420577;8.680916,49.415776", r.URL.Path)
		assert.Equal(t, "0", q.Get("sources"))
		assert.Equal(t, "1", q.Get("destinations"))
		assert.Equal(t, "duration,distance", q.Get("annotations"))

		_, _ = w.Write([]byte(`{"code":"Ok","durations":[[120.5]],"distances":[[null]]}`))
	})

	matrix, err := router.Matrix(context.Background(), routing.MatrixRequest{
		Locations:    heidelberg,
		Sources:      []int{0},
		Destinations: []int{1},
	})
	require.NoError(t, err)
	require.Len(t, matrix.Durations, 1)
	require.NotNil(t, matrix.Durations[0][0])
	assert.Equal(t, 120.5, *matrix.Durations[0][0])
	assert.Nil(t, matrix.Distances[0][0])
}

func TestMatrixWithOptions(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "duration", q.Get("annotations"))
		assert.Equal(t, "10", q.Get("fallback_speed"))
		assert.Equal(t, "1.5", q.Get("scale_factor"))
		_, _ = w.Write([]byte(`{"code":"Ok","durations":[[0,1],[1,0]]}`))
	})

	matrix, err := router.MatrixWithOptions(context.Background(), routing.MatrixRequest{Locations: heidelberg}, MatrixOptions{
		Annotations:   []string{"duration"},
		FallbackSpeed: api.Float(10),
		ScaleFactor:   api.Float(1.5),
	})
	require.NoError(t, err)
	assert.Len(t, matrix.Durations, 2)
	assert.Nil(t, matrix.Distances)
}
