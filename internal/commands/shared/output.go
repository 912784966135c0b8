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
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tombee/routekit/internal/jq"
)

// JSONResponse is the base envelope for all JSON output
type JSONResponse struct {
	Version  string `json:"@version"`
	Command  string `json:"command"`
	Provider string `json:"provider,omitempty"`
	Success  bool   `json:"success"`
}

// resultResponse wraps a routing result for --json output.
type resultResponse struct {
	JSONResponse
	Result any `json:"result"`
}

// EmitJSON writes v as indented JSON.
func EmitJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ValidateJQ compiles the --jq expression so syntax errors surface before
// any request is sent.
func ValidateJQ() error {
	if GetJQ() == "" {
		return nil
	}
	if _, err := jq.NewExecutor(0, 0).Compile(GetJQ()); err != nil {
		return NewUsageError("invalid --jq expression", err)
	}
	return nil
}

// Output renders a routing result:
//   - --jq filters the raw provider response
//   - --json, or stdout that is not a terminal, prints the parsed result
//   - otherwise text renders a human summary
//
// A nil result (dry run, skipped API error) prints nothing.
func Output(cmd *cobra.Command, provider string, result any, raw json.RawMessage, text func(w io.Writer) error) error {
	if result == nil {
		return nil
	}
	out := cmd.OutOrStdout()

	if expr := GetJQ(); expr != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		results, err := jq.NewExecutor(0, 0).Filter(ctx, expr, raw)
		if err != nil {
			return err
		}
		return jq.Write(out, results, true)
	}

	if GetJSON() || !IsTerminal(out) || text == nil {
		return EmitJSON(out, resultResponse{
			JSONResponse: JSONResponse{
				Version:  "1.0",
				Command:  cmd.Name(),
				Provider: provider,
				Success:  true,
			},
			Result: result,
		})
	}

	return text(out)
}
