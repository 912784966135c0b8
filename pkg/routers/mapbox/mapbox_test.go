package mapbox

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

	router, err := New(api.ProviderConfig{APIKey: "pk.secret", Client: &cfg})
	require.NoError(t, err)
	return router, &dryRun
}

func TestDirections(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/directions/v5/mapbox/cycling", r.URL.Path)
		assert.Equal(t, "pk.secret", r.URL.Query().Get("access_token"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "8.688641,49.420577;8.680916,49.415776", r.PostForm.Get("coordinates"))
		assert.Equal(t, "polyline", r.PostForm.Get("geometries"))
		assert.Equal(t, "true", r.PostForm.Get("alternatives"))

		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"geometry":"_p~iF~ps|U_ulLnnqC","duration":120.5,"distance":850.2}]}`))
	})

	directions, err := router.Directions(context.Background(), routing.DirectionsRequest{
		Locations:    heidelberg,
		Profile:      "cycling",
		Alternatives: true,
	})
	require.NoError(t, err)

	primary, ok := directions.Primary()
	require.True(t, ok)
	assert.Equal(t, 120.5, primary.Duration)
	assert.Equal(t, 850.2, primary.Distance)
	assert.InDeltaSlice(t, []float64{-120.95, 40.7}, primary.Geometry[1], 1e-9)
}

func TestDirectionsWithOptions(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/directions/v5/mapbox/driving-traffic", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "polyline6", r.PostForm.Get("geometries"))
		assert.Equal(t, "unlimited;25", r.PostForm.Get("radiuses"))
		assert.Equal(t, "0,45;180,45", r.PostForm.Get("bearings"))
		assert.Equal(t, "toll,ferry", r.PostForm.Get("exclude"))
		assert.Equal(t, "de", r.PostForm.Get("language"))

		_, _ = w.Write([]byte("{\"code\":\"Ok\",\"routes\":[{\"geometry\":\"aqkg}Aa_iqO`kHxaN\",\"duration\":1,\"distance\":2}]}"))
	})

	directions, err := router.DirectionsWithOptions(context.Background(), routing.DirectionsRequest{
		Locations: heidelberg,
		Profile:   "driving-traffic",
	}, DirectionsOptions{
		Geometries: GeometryPolyline6,
		Radiuses:   []float64{-1, 25},
		Bearings:   [][2]int{{0, 45}, {180, 45}},
		Exclude:    []string{"toll", "ferry"},
		Language:   "de",
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{8.680916, 49.415776}, directions.Routes[0].Geometry[1], 1e-9)
}

func TestDirections_NoRoute(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"NoRoute","message":"No route found","routes":[]}`))
	})

	_, err := router.Directions(context.Background(), routing.DirectionsRequest{Locations: heidelberg})

	var apiErr *routeerrors.RouterAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NoRoute: No route found", apiErr.Message)
}

func TestDirections_FormDryRun(t *testing.T) {
	router, dryRun := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("dry run must not reach the server")
	})

	directions, err := router.Directions(context.Background(), routing.DirectionsRequest{
		Locations: heidelberg,
		DryRun:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, directions)

	out := dryRun.String()
	assert.NotContains(t, out, "pk.secret")
	assert.Contains(t, out, `"coordinates": [`)
}

func TestIsochrones(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/isochrone/v1/mapbox/walking/8.688641,49.420577", r.URL.Path)
		assert.Equal(t, "5,10", q.Get("contours_minutes"))
		assert.Equal(t, "true", q.Get("polygons"))

		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"contour":10},
			 "geometry":{"type":"Polygon","coordinates":[[[8.67,49.41],[8.70,49.41],[8.70,49.44],[8.67,49.41]]]}},
			{"type":"Feature","properties":{"contour":5},
			 "geometry":{"type":"Polygon","coordinates":[[[8.68,49.42],[8.69,49.42],[8.69,49.43],[8.68,49.42]]]}}
		]}`))
	})

	isochrones, err := router.Isochrones(context.Background(), routing.IsochronesRequest{
		Location:  heidelberg[0],
		Profile:   "walking",
		Intervals: []float64{300, 600},
	})
	require.NoError(t, err)
	require.Len(t, isochrones.Isochrones, 2)
	assert.Equal(t, 600.0, isochrones.Isochrones[0].Interval)
	assert.Equal(t, 300.0, isochrones.Isochrones[1].Interval)
}

func TestIsochrones_Meters(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1000", q.Get("contours_meters"))
		assert.Empty(t, q.Get("contours_minutes"))
		assert.Equal(t, "ff0000", q.Get("contours_colors"))
		assert.Equal(t, "false", q.Get("polygons"))

		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"contour":1000},
			 "geometry":{"type":"LineString","coordinates":[[8.67,49.41],[8.70,49.41]]}}
		]}`))
	})

	isochrones, err := router.IsochronesWithOptions(context.Background(), routing.IsochronesRequest{
		Location:     heidelberg[0],
		Intervals:    []float64{1000},
		IntervalType: routing.IntervalDistance,
	}, IsochronesOptions{Colors: []string{"ff0000"}, Polygons: api.Bool(false)})
	require.NoError(t, err)
	require.Len(t, isochrones.Isochrones, 1)
	assert.Equal(t, 1000.0, isochrones.Isochrones[0].Interval)
}

func TestMatrix(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/directions-matrix/v1/mapbox/driving/8.688641,49.420577;8.680916,49.415776", r.URL.Path)
		assert.Equal(t, "0", q.Get("sources"))
		assert.Equal(t, "duration,distance", q.Get("annotations"))

		_, _ = w.Write([]byte(`{"code":"Ok","durations":[[0,120]],"distances":[[0,null]]}`))
	})

	matrix, err := router.Matrix(context.Background(), routing.MatrixRequest{
		Locations: heidelberg,
		Sources:   []int{0},
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, *matrix.Durations[0][1])
	assert.Nil(t, matrix.Distances[0][1])
}

func TestRequiresToken(t *testing.T) {
	router, err := New(api.ProviderConfig{})
	require.NoError(t, err)

	_, err = router.Matrix(context.Background(), routing.MatrixRequest{Locations: heidelberg})
	var cfgErr *routeerrors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestProfilePath(t *testing.T) {
	assert.Equal(t, "mapbox/driving", profilePath(""))
	assert.Equal(t, "mapbox/walking", profilePath("walking"))
	assert.Equal(t, "custom/profile", profilePath("custom/profile"))
}
