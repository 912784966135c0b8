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

package errors_test

import (
	"errors"
	"strings"
	"testing"

	routeerrors "github.com/tombee/routekit/pkg/errors"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		original := errors.New("unexpected EOF")
		wrapped := routeerrors.Wrap(original, "osrm: directions")

		if wrapped == nil {
			t.Fatal("Wrap should not return nil for non-nil error")
		}

		msg := wrapped.Error()
		if !strings.Contains(msg, "osrm: directions") {
			t.Errorf("wrapped error should contain context, got: %s", msg)
		}
		if !strings.Contains(msg, "unexpected EOF") {
			t.Errorf("wrapped error should contain original message, got: %s", msg)
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		wrapped := routeerrors.Wrap(nil, "context")
		if wrapped != nil {
			t.Errorf("Wrap(nil, _) should return nil, got: %v", wrapped)
		}
	})

	t.Run("preserves error chain", func(t *testing.T) {
		original := errors.New("budget exhausted")
		wrapped := routeerrors.Wrap(original, "context")

		if !errors.Is(wrapped, original) {
			t.Error("wrapped error should match original with errors.Is")
		}

		unwrapped := errors.Unwrap(wrapped)
		if unwrapped != original {
			t.Errorf("Unwrap should return original error, got: %v", unwrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	t.Run("wraps error with formatted context", func(t *testing.T) {
		original := errors.New("no route")
		wrapped := routeerrors.Wrapf(original, "valhalla: %s", "isochrone")

		if wrapped == nil {
			t.Fatal("Wrapf should not return nil for non-nil error")
		}

		msg := wrapped.Error()
		if !strings.Contains(msg, "valhalla: isochrone") {
			t.Errorf("wrapped error should contain formatted context, got: %s", msg)
		}
		if !strings.Contains(msg, "no route") {
			t.Errorf("wrapped error should contain original message, got: %s", msg)
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		wrapped := routeerrors.Wrapf(nil, "valhalla: %s", "isochrone")
		if wrapped != nil {
			t.Errorf("Wrapf(nil, _, _) should return nil, got: %v", wrapped)
		}
	})

	t.Run("handles multiple format arguments", func(t *testing.T) {
		original := errors.New("dial tcp: connection refused")
		wrapped := routeerrors.Wrapf(original, "calling %s:%d", "router.example.com", 5000)

		msg := wrapped.Error()
		if !strings.Contains(msg, "calling router.example.com:5000") {
			t.Errorf("wrapped error should contain formatted context, got: %s", msg)
		}
	})

	t.Run("preserves error chain", func(t *testing.T) {
		original := errors.New("budget exhausted")
		wrapped := routeerrors.Wrapf(original, "ors: %s", "matrix")

		if !errors.Is(wrapped, original) {
			t.Error("wrapped error should match original with errors.Is")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("finds error in chain", func(t *testing.T) {
		target := &routeerrors.ValidationError{Field: "test"}
		wrapped := routeerrors.Wrap(target, "wrapper")

		if !routeerrors.Is(wrapped, target) {
			t.Error("Is should find target error in chain")
		}
	})

	t.Run("returns false for different error", func(t *testing.T) {
		err := &routeerrors.ValidationError{Field: "test"}
		target := &routeerrors.RouterNotFoundError{Name: "test"}

		if routeerrors.Is(err, target) {
			t.Error("Is should return false for different error types")
		}
	})

	t.Run("returns false for nil error", func(t *testing.T) {
		target := &routeerrors.ValidationError{Field: "test"}

		if routeerrors.Is(nil, target) {
			t.Error("Is should return false for nil error")
		}
	})
}

func TestAs(t *testing.T) {
	t.Run("extracts typed error from chain", func(t *testing.T) {
		original := &routeerrors.ValidationError{
			Field:   "locations",
			Message: "invalid format",
		}
		wrapped := routeerrors.Wrap(original, "validation failed")

		var target *routeerrors.ValidationError
		if !routeerrors.As(wrapped, &target) {
			t.Fatal("As should extract ValidationError from chain")
		}

		if target.Field != "locations" {
			t.Errorf("extracted error Field = %q, want %q", target.Field, "locations")
		}
		if target.Message != "invalid format" {
			t.Errorf("extracted error Message = %q, want %q", target.Message, "invalid format")
		}
	})

	t.Run("returns false for different error type", func(t *testing.T) {
		err := &routeerrors.ValidationError{Field: "test"}

		var target *routeerrors.RouterNotFoundError
		if routeerrors.As(err, &target) {
			t.Error("As should return false when error type doesn't match")
		}
	})

	t.Run("returns false for nil error", func(t *testing.T) {
		var target *routeerrors.ValidationError
		if routeerrors.As(nil, &target) {
			t.Error("As should return false for nil error")
		}
	})

	t.Run("extracts all error types", func(t *testing.T) {
		tests := []struct {
			name   string
			err    error
			target interface{}
		}{
			{
				name:   "RouterNotFoundError",
				err:    &routeerrors.RouterNotFoundError{Name: "test"},
				target: &routeerrors.RouterNotFoundError{},
			},
			{
				name:   "RouterAPIError",
				err:    &routeerrors.RouterAPIError{Provider: "osrm"},
				target: &routeerrors.RouterAPIError{},
			},
			{
				name:   "ConfigError",
				err:    &routeerrors.ConfigError{Key: "test"},
				target: &routeerrors.ConfigError{},
			},
			{
				name:   "TimeoutError",
				err:    &routeerrors.TimeoutError{Operation: "test"},
				target: &routeerrors.TimeoutError{},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				wrapped := routeerrors.Wrap(tt.err, "wrapper")
				if !routeerrors.As(wrapped, &tt.target) {
					t.Errorf("As should extract %s from chain", tt.name)
				}
			})
		}
	})
}

func TestUnwrap(t *testing.T) {
	t.Run("unwraps single level", func(t *testing.T) {
		original := errors.New("bad gateway")
		wrapped := routeerrors.Wrap(original, "wrapper")

		unwrapped := routeerrors.Unwrap(wrapped)
		if unwrapped != original {
			t.Errorf("Unwrap should return original error, got: %v", unwrapped)
		}
	})

	t.Run("returns nil for error without cause", func(t *testing.T) {
		err := errors.New("simple error")
		unwrapped := routeerrors.Unwrap(err)
		if unwrapped != nil {
			t.Errorf("Unwrap should return nil for error without cause, got: %v", unwrapped)
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		unwrapped := routeerrors.Unwrap(nil)
		if unwrapped != nil {
			t.Errorf("Unwrap(nil) should return nil, got: %v", unwrapped)
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("creates new error", func(t *testing.T) {
		err := routeerrors.New("no locations")
		if err == nil {
			t.Fatal("New should create non-nil error")
		}

		if err.Error() != "no locations" {
			t.Errorf("error message = %q, want %q", err.Error(), "no locations")
		}
	})

	t.Run("creates unique error instances", func(t *testing.T) {
		err1 := routeerrors.New("test")
		err2 := routeerrors.New("test")

		if err1 == err2 {
			t.Error("New should create unique error instances")
		}
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "over query limit", err: &routeerrors.OverQueryLimitError{StatusCode: 429}, want: true},
		{name: "wrapped over query limit", err: routeerrors.Wrap(&routeerrors.OverQueryLimitError{}, "ors: matrix"), want: true},
		{name: "api error", err: &routeerrors.RouterAPIError{StatusCode: 400}, want: false},
		{name: "timeout", err: &routeerrors.TimeoutError{Operation: "GET /route"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := routeerrors.IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "api error", err: &routeerrors.RouterAPIError{StatusCode: 404}, want: 404},
		{name: "server error wrapped", err: routeerrors.Wrap(&routeerrors.RouterServerError{StatusCode: 502}, "valhalla"), want: 502},
		{name: "over query limit", err: &routeerrors.OverQueryLimitError{StatusCode: 429}, want: 429},
		{name: "parse error", err: &routeerrors.JSONParseError{StatusCode: 200}, want: 200},
		{name: "transport failure", err: &routeerrors.RouterError{Message: "connection refused"}, want: 0},
		{name: "plain", err: errors.New("x"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := routeerrors.StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
