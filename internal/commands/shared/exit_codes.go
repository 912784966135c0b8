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

package shared

import (
	"context"
	"errors"
	"fmt"
	"io"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

// Exit codes returned by the routekit binary
const (
	ExitSuccess  = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitAPIError = 3
	ExitTimeout  = 4
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUsageError creates an error for invalid flags or arguments
func NewUsageError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUsage,
		Message: msg,
		Cause:   cause,
	}
}

// NewUnsupportedError reports a provider that lacks an operation.
func NewUnsupportedError(provider, operation string) *ExitError {
	return &ExitError{
		Code:    ExitUsage,
		Message: fmt.Sprintf("provider %q does not support %s", provider, operation),
	}
}

// ExitCodeFor maps an error to the process exit code. ExitError codes win;
// otherwise the routekit error type decides.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeout
	}

	var classified routeerrors.ErrorClassifier
	if !errors.As(err, &classified) {
		return ExitFailure
	}

	switch classified.ErrorType() {
	case routeerrors.TypeValidation, routeerrors.TypeConfig, routeerrors.TypeNotFound:
		return ExitUsage
	case routeerrors.TypeAPI, routeerrors.TypeOverQueryLimit, routeerrors.TypeServer, routeerrors.TypeJSONParse:
		return ExitAPIError
	case routeerrors.TypeTimeout:
		return ExitTimeout
	case routeerrors.TypeRouter:
		if routeerrors.StatusCode(err) > 0 {
			return ExitAPIError
		}
		return ExitFailure
	default:
		return ExitFailure
	}
}

// PrintError writes err and any validation suggestion to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err.Error())

	var valErr *routeerrors.ValidationError
	if errors.As(err, &valErr) && valErr.Suggestion != "" {
		fmt.Fprintf(w, "\nSuggestion: %s\n", valErr.Suggestion)
	}
}
