// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Error type identifiers returned by ErrorType.
const (
	TypeTimeout        = "timeout"
	TypeJSONParse      = "json_parse"
	TypeAPI            = "api"
	TypeOverQueryLimit = "over_query_limit"
	TypeServer         = "server"
	TypeRouter         = "router"
	TypeNotFound       = "not_found"
	TypeValidation     = "validation"
	TypeConfig         = "config"
)

// maxBodyInMessage bounds how much of a response body ends up in an error string.
const maxBodyInMessage = 512

// ValidationError represents caller input validation failures.
// Use this for invalid locations, profiles or option values.
type ValidationError struct {
	// Field identifies which input field failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return TypeValidation }

// IsRetryable implements ErrorClassifier.
func (e *ValidationError) IsRetryable() bool { return false }

// ConfigError represents configuration problems.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "providers.ors.api_key")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *ConfigError) ErrorType() string { return TypeConfig }

// IsRetryable implements ErrorClassifier.
func (e *ConfigError) IsRetryable() bool { return false }

// TimeoutError is returned when the retry budget of a logical request is
// exhausted or when a single attempt times out at the transport level.
type TimeoutError struct {
	// Operation describes what timed out (e.g., "GET /route/v1/driving")
	Operation string

	// Duration is how long the operation ran before timing out
	Duration time.Duration

	// Attempts is the number of HTTP attempts made
	Attempts int

	// Cause is the last retried condition or the transport error
	Cause error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("%s timed out after %v", e.Operation, e.Duration.Round(time.Millisecond))
	if e.Attempts > 1 {
		msg = fmt.Sprintf("%s (%d attempts)", msg, e.Attempts)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *TimeoutError) ErrorType() string { return TypeTimeout }

// IsRetryable implements ErrorClassifier.
func (e *TimeoutError) IsRetryable() bool { return false }

// JSONParseError is returned when a provider responds with a body that is
// not valid JSON.
type JSONParseError struct {
	StatusCode int
	Body       string
	Cause      error
}

// Error implements the error interface.
func (e *JSONParseError) Error() string {
	return fmt.Sprintf("cannot parse response body as JSON [HTTP %d]: %s", e.StatusCode, truncate(e.Body))
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *JSONParseError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *JSONParseError) ErrorType() string { return TypeJSONParse }

// IsRetryable implements ErrorClassifier.
func (e *JSONParseError) IsRetryable() bool { return false }

// RouterAPIError represents a 4xx response (other than 429) from a provider.
// The request itself was rejected, so retrying it cannot succeed.
type RouterAPIError struct {
	Provider   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RouterAPIError) Error() string {
	return formatProviderError("api error", e.Provider, e.StatusCode, e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *RouterAPIError) ErrorType() string { return TypeAPI }

// IsRetryable implements ErrorClassifier.
func (e *RouterAPIError) IsRetryable() bool { return false }

// OverQueryLimitError represents HTTP 429 or a provider-specific quota signal.
type OverQueryLimitError struct {
	Provider   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *OverQueryLimitError) Error() string {
	return formatProviderError("over query limit", e.Provider, e.StatusCode, e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *OverQueryLimitError) ErrorType() string { return TypeOverQueryLimit }

// IsRetryable implements ErrorClassifier.
func (e *OverQueryLimitError) IsRetryable() bool { return true }

// RouterServerError represents a 5xx response from a provider.
type RouterServerError struct {
	Provider   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RouterServerError) Error() string {
	return formatProviderError("server error", e.Provider, e.StatusCode, e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *RouterServerError) ErrorType() string { return TypeServer }

// IsRetryable implements ErrorClassifier.
func (e *RouterServerError) IsRetryable() bool { return false }

// RouterError is the catch-all for unexpected statuses and transport
// failures. StatusCode is zero when no response was received.
type RouterError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *RouterError) Error() string {
	return formatProviderError("router error", e.Provider, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *RouterError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *RouterError) ErrorType() string { return TypeRouter }

// IsRetryable implements ErrorClassifier.
func (e *RouterError) IsRetryable() bool { return false }

// RouterNotFoundError is returned when a router is looked up by an unknown name.
type RouterNotFoundError struct {
	Name      string
	Available []string
}

// Error implements the error interface.
func (e *RouterNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("router not found: %s", e.Name)
	}
	available := append([]string(nil), e.Available...)
	sort.Strings(available)
	return fmt.Sprintf("router not found: %s (available: %s)", e.Name, strings.Join(available, ", "))
}

// ErrorType implements ErrorClassifier.
func (e *RouterNotFoundError) ErrorType() string { return TypeNotFound }

// IsRetryable implements ErrorClassifier.
func (e *RouterNotFoundError) IsRetryable() bool { return false }

func formatProviderError(kind, provider string, status int, message string) string {
	msg := kind
	if provider != "" {
		msg = fmt.Sprintf("%s %s", provider, kind)
	}
	if status > 0 {
		msg = fmt.Sprintf("%s [HTTP %d]", msg, status)
	}
	if message != "" {
		msg = fmt.Sprintf("%s: %s", msg, truncate(message))
	}
	return msg
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxBodyInMessage {
		return s
	}
	return s[:maxBodyInMessage] + "..."
}
