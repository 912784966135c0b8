// Package google adapts the Google Maps Directions and Distance Matrix
// APIs to the routekit model.
package google

import (
	"encoding/json"
	"net/http"
	"strings"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routers/api"
	"github.com/tombee/routekit/pkg/routing"
)

const (
	// Name is the registry name of the adapter.
	Name = "google"

	// DefaultBaseURL is the Google Maps web service root.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"

	// DefaultProfile is the travel mode used when a request has none.
	DefaultProfile = "driving"
)

// Body-level status values.
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
	StatusUnknownError   = "UNKNOWN_ERROR"
)

// Router talks to Google Maps.
type Router struct {
	*api.BaseProvider
}

var (
	_ routing.Directioner = (*Router)(nil)
	_ routing.Matrixer    = (*Router)(nil)
)

// New creates a Google router. Every request needs an API key.
func New(config api.ProviderConfig) (*Router, error) {
	base, err := api.NewBaseProvider(Name, DefaultBaseURL, config)
	if err != nil {
		return nil, err
	}
	return &Router{BaseProvider: base}, nil
}

func (r *Router) params() httpclient.Params {
	var p httpclient.Params
	p.Add("key", r.APIKey())
	return p
}

type status struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// checkStatus maps the status field of a 200 response to the error
// taxonomy. ZERO_RESULTS is a valid, empty answer.
func (r *Router) checkStatus(body []byte) error {
	var st status
	if err := json.Unmarshal(body, &st); err != nil {
		return nil
	}

	msg := st.Status
	if st.ErrorMessage != "" {
		msg += ": " + st.ErrorMessage
	}

	switch st.Status {
	case "", StatusOK, StatusZeroResults:
		return nil
	case StatusOverQueryLimit:
		return &routeerrors.OverQueryLimitError{Provider: Name, StatusCode: http.StatusOK, Message: msg}
	case StatusUnknownError:
		return &routeerrors.RouterServerError{Provider: Name, StatusCode: http.StatusOK, Message: msg}
	default:
		return r.APIError(http.StatusOK, msg)
	}
}

// joinLatLons formats locations as "lat,lon|lat,lon".
func joinLatLons(locations []routing.Location) string {
	parts := make([]string, len(locations))
	for i, loc := range locations {
		parts[i] = loc.LatLonString()
	}
	return strings.Join(parts, "|")
}
