// Package osrm adapts the OSRM HTTP API (also served by FOSSGIS at
// routing.openstreetmap.de) to the routekit model.
package osrm

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

const (
	// Name is the registry name of the adapter.
	Name = "osrm"

	// DefaultBaseURL is the FOSSGIS bicycle instance.
	DefaultBaseURL = "https://routing.openstreetmap.de/routed-bike"

	// DefaultProfile is used when a request has no profile. The FOSSGIS
	// instances ignore the profile segment; self-hosted servers usually
	// expose "driving".
	DefaultProfile = "driving"
)

// Router talks to an OSRM server.
type Router struct {
	*api.BaseProvider
}

var (
	_ routing.Directioner = (*Router)(nil)
	_ routing.Matrixer    = (*Router)(nil)
)

// New creates an OSRM router. OSRM needs no API key.
func New(config api.ProviderConfig) (*Router, error) {
	base, err := api.NewBaseProvider(Name, DefaultBaseURL, config)
	if err != nil {
		return nil, err
	}
	return &Router{BaseProvider: base}, nil
}

// status carries the fields shared by every OSRM service response.
type status struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// checkCode reports a non-"Ok" code in a 200 response as an API error.
func (r *Router) checkCode(body []byte) error {
	var st status
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
