// Package mapbox adapts the Mapbox Navigation APIs (Directions,
// Isochrone and Matrix) to the routekit model.
package mapbox

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

const (
	// Name is the registry name of the adapter.
	Name = "mapbox"

	// DefaultBaseURL is the Mapbox API root.
	DefaultBaseURL = "https://api.mapbox.com"

	// DefaultProfile is used when a request has no profile.
	DefaultProfile = "driving"
)

// Router talks to Mapbox.
type Router struct {
	*api.BaseProvider
}

var (
	_ routing.Directioner = (*Router)(nil)
	_ routing.Isochroner  = (*Router)(nil)
	_ routing.Matrixer    = (*Router)(nil)
)

// New creates a Mapbox router. The access token is sent as the
// "access_token" query parameter.
func New(config api.ProviderConfig) (*Router, error) {
	base, err := api.NewBaseProvider(Name, DefaultBaseURL, config)
	if err != nil {
		return nil, err
	}
	return &Router{BaseProvider: base}, nil
}

func (r *Router) params() httpclient.Params {
	var p httpclient.Params
	p.Add("access_token", r.APIKey())
	return p
}

// profilePath prefixes bare profiles with the "mapbox/" namespace.
func profilePath(profile string) string {
	profile = api.Profile(profile, DefaultProfile)
	if strings.Contains(profile, "/") {
		return profile
	}
	return "mapbox/" + profile
}

// checkCode reports a non-"Ok" code in a 200 response as an API error.
func (r *Router) checkCode(body []byte) error {
	var st struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &st); err != nil {
		return nil
	}
	if st.Code == "" || st.Code == "Ok" {
		return nil
	}
	msg := st.Code
	if st.Message != "" {
		msg += ": " + st.Message
	}
	return r.APIError(http.StatusOK, msg)
}

func joinStrings(values []string) string {
	return strings.Join(values, ",")
}
