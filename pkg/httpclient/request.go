package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Request is one logical request. It may result in several HTTP attempts.
type Request struct {
	// Path is appended to the client's BaseURL. It must be escaped already.
	Path string

	// Params are the query parameters.
	Params Params

	// JSON is marshalled as an application/json body. Mutually exclusive
	// with Form.
	JSON any

	// Form is sent as an application/x-www-form-urlencoded body.
	Form url.Values

	// Headers are set on every attempt (e.g., Authorization).
	Headers map[string]string

	// Check inspects a 200 response body for provider-level errors. Its
	// error is handled like a status error, so an OverQueryLimitError is
	// retried and a RouterAPIError honors SkipAPIError.
	Check func(body []byte) error

	// DryRun writes the request to the client's DryRunOutput instead of
	// sending it.
	DryRun bool
}

// Response is the successful outcome of a logical request.
type Response struct {
	// StatusCode is the HTTP status of the final attempt.
	StatusCode int

	// Header holds the response headers of the final attempt.
	Header http.Header

	// Body is the response body. It is always valid JSON.
	Body json.RawMessage

	// Attempts is the number of HTTP attempts made.
	Attempts int

	// Duration is the wall-clock time of the logical request.
	Duration time.Duration
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// encodedBody is a request body ready to send.
type encodedBody struct {
	method      string
	contentType string
	data        []byte
}

func (r *Request) encode() (encodedBody, error) {
	switch {
	case r.JSON != nil && r.Form != nil:
		return encodedBody{}, errors.New("request cannot have both a JSON and a form body")
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return encodedBody{}, fmt.Errorf("marshal request body: %w", err)
		}
		return encodedBody{method: http.MethodPost, contentType: "application/json", data: data}, nil
	case r.Form != nil:
		return encodedBody{
			method:      http.MethodPost,
			contentType: "application/x-www-form-urlencoded",
			data:        []byte(r.Form.Encode()),
		}, nil
	default:
		return encodedBody{method: http.MethodGet}, nil
	}
}

// reader returns a fresh body reader for one attempt.
func (b encodedBody) reader() io.Reader {
	if b.data == nil {
		return nil
	}
	return bytes.NewReader(b.data)
}
