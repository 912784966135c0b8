package httpclient

import (
	"encoding/json"
	"fmt"
)

// writeDryRun prints the request that would be sent, with credentials
// redacted. No network I/O happens. Requests without a body print their
// query parameters instead.
func (c *Client) writeDryRun(fullURL string, req *Request, body encodedBody) error {
	var payload any
	switch {
	case req.JSON != nil:
		payload = req.JSON
	case req.Form != nil:
		payload = map[string][]string(req.Form)
	case req.Params.Len() > 0:
		payload = redactParams(req.Params.Map())
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("format dry run: %w", err)
	}

	_, err = fmt.Fprintf(c.dryRunOut, "url:\n%s %s\nParameters:\n%s\n", body.method, sanitizeRawURL(fullURL), pretty)
	return err
}

// redactParams masks the values of sensitive keys in place.
func redactParams(m map[string][]string) map[string][]string {
	for key, values := range m {
		if !isSensitiveParam(key) {
			continue
		}
		for i := range values {
			values[i] = redacted
		}
	}
	return m
}
