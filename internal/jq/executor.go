// Package jq filters raw provider responses with jq expressions for the
// CLI's --jq flag.
package jq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/itchyny/gojq"
)

const (
	// DefaultTimeout bounds a single filter run.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxInputSize is the largest response accepted (64MB, the
	// HTTP client's response cap).
	DefaultMaxInputSize = 64 << 20
)

// Executor compiles and runs jq expressions with time and size limits.
type Executor struct {
	timeout      time.Duration
	maxInputSize int
}

// NewExecutor creates an Executor. Zero values select the defaults.
func NewExecutor(timeout time.Duration, maxInputSize int) *Executor {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if maxInputSize == 0 {
		maxInputSize = DefaultMaxInputSize
	}

	return &Executor{
		timeout:      timeout,
		maxInputSize: maxInputSize,
	}
}

// Compile parses and compiles expression. The CLI calls it before sending
// any request so a typo does not cost an API call.
func (e *Executor) Compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("jq compilation failed: %w", err)
	}

	return code, nil
}

// Filter runs expression against a raw JSON document and returns every
// value it emits, in order. An empty expression returns the document.
func (e *Executor) Filter(ctx context.Context, expression string, raw json.RawMessage) ([]any, error) {
	if len(raw) > e.maxInputSize {
		return nil, fmt.Errorf("response size (%d bytes) exceeds maximum (%d bytes)", len(raw), e.maxInputSize)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if expression == "" {
		return []any{data}, nil
	}

	code, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var results []any
	iter := code.RunWithContext(execCtx, data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if execCtx.Err() != nil {
				return nil, fmt.Errorf("execution timeout after %v", e.timeout)
			}
			return nil, err
		}
		results = append(results, v)
	}

	return results, nil
}

// Write prints each result on its own line like the jq command: strings
// raw when rawStrings is set, everything else as indented JSON.
func Write(w io.Writer, results []any, rawStrings bool) error {
	for _, v := range results {
		if s, ok := v.(string); ok && rawStrings {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
			continue
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
			return err
		}
	}
	return nil
}
