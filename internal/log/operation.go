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

package log

import (
	"context"
	"log/slog"
	"time"
)

// Operation describes one routing call made by a CLI command.
type Operation struct {
	// Name is the routing operation (e.g., "directions", "isochrones").
	Name string

	// Provider is the routing service name.
	Provider string

	// RequestID correlates the operation with its HTTP attempts.
	RequestID string

	// Metadata contains additional fields, such as the number of locations.
	Metadata map[string]any
}

func (op Operation) logger(base *slog.Logger) *slog.Logger {
	logger := WithOperation(base, op.Provider, op.Name)
	if op.RequestID != "" {
		logger = WithRequestID(logger, op.RequestID)
	}
	return logger
}

func (op Operation) attrs() []any {
	attrs := make([]any, 0, 2*len(op.Metadata))
	for k, v := range op.Metadata {
		attrs = append(attrs, k, v)
	}
	return attrs
}

// RunOperation logs the start of op, runs fn, and logs the outcome with
// its duration. fn's error is returned unchanged.
func RunOperation(ctx context.Context, logger *slog.Logger, op Operation, fn func(ctx context.Context) error) error {
	logger = op.logger(logger)
	start := time.Now()
	logger.Debug("routing operation started", append(op.attrs(), EventKey, "operation_start")...)

	err := fn(ctx)

	attrs := append(op.attrs(),
		EventKey, "operation_end",
		DurationKey, time.Since(start).Milliseconds(),
		"success", err == nil,
	)
	if err != nil {
		logger.Debug("routing operation failed", append(attrs, "error", err.Error())...)
		return err
	}

	logger.Debug("routing operation completed", attrs...)
	return nil
}
