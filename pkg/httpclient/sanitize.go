package httpclient

import (
	"net/url"
	"strings"
)

// sensitiveParams are query parameter names redacted from logs and dry-run
// output, matched case-insensitively as substrings. Routing services put
// credentials in the query string: "key" (Google, GraphHopper),
// "api_key" (Stadia/Valhalla), "access_token" (Mapbox), "signature" (Google
// premium plans).
var sensitiveParams = []string{
	"key",
	"token",
	"secret",
	"signature",
	"password",
	"credential",
	"auth",
}

// redacted replaces sensitive values.
const redacted = "[REDACTED]"

// sanitizeURL returns the URL with sensitive query parameters redacted.
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	q := u.Query()
	for param := range q {
		if isSensitiveParam(param) {
			q.Set(param, redacted)
		}
	}

	safe := *u
	safe.RawQuery = q.Encode()
	return safe.String()
}

// sanitizeRawURL is sanitizeURL for a string; unparsable input is dropped
// entirely rather than risk printing a credential.
func sanitizeRawURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}
	return sanitizeURL(u)
}

// isSensitiveParam checks if a parameter name matches the sensitive list.
func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
