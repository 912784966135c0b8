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
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitFailure},
		{"usage", NewUsageError("bad flag", nil), ExitUsage},
		{"unsupported", NewUnsupportedError("osrm", "isochrones"), ExitUsage},
		{"validation", &routeerrors.ValidationError{Field: "locations", Message: "too few"}, ExitUsage},
		{"config", &routeerrors.ConfigError{Key: "providers.ors.api_key", Reason: "missing"}, ExitUsage},
		{"unknown router", &routeerrors.RouterNotFoundError{Name: "here"}, ExitUsage},
		{"api error", &routeerrors.RouterAPIError{Provider: "ors", StatusCode: 400}, ExitAPIError},
		{"wrapped api error", fmt.Errorf("ors directions: %w", &routeerrors.RouterAPIError{StatusCode: 404}), ExitAPIError},
		{"over query limit", &routeerrors.OverQueryLimitError{StatusCode: 429}, ExitAPIError},
		{"server error", &routeerrors.RouterServerError{StatusCode: 500}, ExitAPIError},
		{"unexpected status", &routeerrors.RouterError{StatusCode: 302}, ExitAPIError},
		{"transport failure", &routeerrors.RouterError{Message: "connection refused"}, ExitFailure},
		{"timeout", &routeerrors.TimeoutError{Operation: "GET /route", Duration: time.Minute}, ExitTimeout},
		{
			"timeout wrapping server error",
			&routeerrors.TimeoutError{Cause: &routeerrors.RouterServerError{StatusCode: 503}},
			ExitTimeout,
		},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), ExitTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, &routeerrors.ValidationError{
		Field:      "intervals",
		Message:    "at least one interval is required",
		Suggestion: "pass intervals in seconds, e.g. 300,600",
	})

	out := buf.String()
	if !strings.HasPrefix(out, "Error: ") {
		t.Errorf("output = %q, want Error: prefix", out)
	}
	if !strings.Contains(out, "Suggestion: pass intervals in seconds") {
		t.Errorf("output = %q, want suggestion", out)
	}
}
