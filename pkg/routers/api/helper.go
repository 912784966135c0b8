package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	routeerrors "github.com/tombee/routekit/pkg/errors"
	"github.com/tombee/routekit/pkg/httpclient"
	"github.com/tombee/routekit/pkg/routing"
)

// BaseProvider provides common functionality for routing adapters.
type BaseProvider struct {
	name   string
	client *httpclient.Client
	apiKey string
}

// NewBaseProvider creates a base provider, building its HTTP client from
// config. defaultBaseURL is used when config does not set one.
func NewBaseProvider(name, defaultBaseURL string, config ProviderConfig) (*BaseProvider, error) {
	var clientCfg httpclient.Config
	if config.Client != nil {
		clientCfg = *config.Client
	} else {
		clientCfg = httpclient.DefaultConfig(name, defaultBaseURL)
	}
	if clientCfg.Provider == "" {
		clientCfg.Provider = name
	}
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = defaultBaseURL
	}

	client, err := httpclient.New(clientCfg)
	if err != nil {
		return nil, routeerrors.Wrap(err, name)
	}

	return &BaseProvider{
		name:   name,
		client: client,
		apiKey: config.APIKey,
	}, nil
}

// Name returns the provider identifier.
func (c *BaseProvider) Name() string {
	return c.name
}

// APIKey returns the configured API key.
func (c *BaseProvider) APIKey() string {
	return c.apiKey
}

// Client returns the underlying HTTP client.
func (c *BaseProvider) Client() *httpclient.Client {
	return c.client
}

// RequireAPIKey fails with a ConfigError when no API key is configured.
func (c *BaseProvider) RequireAPIKey() error {
	if c.apiKey == "" {
		return &routeerrors.ConfigError{
			Key:    "providers." + c.name + ".api_key",
			Reason: c.name + " requires an API key",
		}
	}
	return nil
}

// Execute sends req and decodes the response body into target. A nil raw
// body with a nil error means there is no result: the request was a dry
// run or an API error was skipped.
func (c *BaseProvider) Execute(ctx context.Context, operation string, req *httpclient.Request, target any) (json.RawMessage, error) {
	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, routeerrors.Wrapf(err, "%s %s", c.name, operation)
	}
	if resp == nil {
		return nil, nil
	}

	if target != nil {
		if err := json.Unmarshal(resp.Body, target); err != nil {
			return nil, routeerrors.Wrapf(&routeerrors.JSONParseError{
				StatusCode: resp.StatusCode,
				Body:       string(resp.Body),
				Cause:      err,
			}, "%s %s", c.name, operation)
		}
	}
	return resp.Body, nil
}

// Profile returns profile, or fallback when it is empty.
func Profile(profile, fallback string) string {
	if profile == "" {
		return fallback
	}
	return profile
}

// LonLats converts locations to [lon, lat] pairs.
func LonLats(locations []routing.Location) [][]float64 {
	coords := make([][]float64, len(locations))
	for i, loc := range locations {
		coords[i] = loc.LonLat()
	}
	return coords
}

// Pick returns the locations at indices, or all of them when indices is
// empty. Indices must have been validated.
func Pick(locations []routing.Location, indices []int) []routing.Location {
	if len(indices) == 0 {
		return locations
	}
	out := make([]routing.Location, len(indices))
	for i, idx := range indices {
		out[i] = locations[idx]
	}
	return out
}

// JoinFloats formats values with sep.
func JoinFloats(values []float64, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, sep)
}

// JoinInts formats values with sep.
func JoinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

// JoinRadiuses formats per-location snapping radiuses separated by ";".
// Negative values mean "unlimited".
func JoinRadiuses(radiuses []float64) string {
	parts := make([]string, len(radiuses))
	for i, r := range radiuses {
		if r < 0 {
			parts[i] = "unlimited"
		} else {
			parts[i] = routing.FormatFloat(r)
		}
	}
	return strings.Join(parts, ";")
}

// JoinBearings formats [bearing, range] pairs as "b,r;b,r".
func JoinBearings(bearings [][2]int) string {
	parts := make([]string, len(bearings))
	for i, b := range bearings {
		parts[i] = JoinInts(b[:], ",")
	}
	return strings.Join(parts, ";")
}

// FormatBool formats b as "true" or "false".
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// APIError builds a RouterAPIError for provider-level failures reported in
// an HTTP 200 body.
func (c *BaseProvider) APIError(status int, message string) error {
	return &routeerrors.RouterAPIError{Provider: c.name, StatusCode: status, Message: message}
}

// Language validates a BCP 47 language tag and returns its canonical form
// ("en-us" becomes "en-US"). An empty tag is returned unchanged.
func Language(tag string) (string, error) {
	if tag == "" {
		return "", nil
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", &routeerrors.ValidationError{
			Field:      "language",
			Message:    fmt.Sprintf("invalid language tag %q", tag),
			Suggestion: `use a BCP 47 tag such as "en" or "pt-BR"`,
		}
	}
	return parsed.String(), nil
}
