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

package polyline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/routekit/internal/commands/shared"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewPolylineCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want [][]float64
	}{
		{
			name: "precision 5",
			args: []string{"decode", "_p~iF~ps|U_ulLnnqC"},
			want: [][]float64{{-120.2, 38.5}, {-120.95, 40.7}},
		},
		{
			name: "precision 5 latlon",
			args: []string{"decode", "--order", "latlon", "_p~iF~ps|U_ulLnnqC"},
			want: [][]float64{{38.5, -120.2}, {40.7, -120.95}},
		},
		{
			name: "precision 6",
			args: []string{"decode", "--precision", "6", "aqkg}Aa_iqO`kHxaN"},
			want: [][]float64{{8.688641, 49.420577}, {8.680916, 49.415776}},
		},
		{
			name: "elevation",
			args: []string{"decode", "--elevation", `smslH__` + "`" + `t@sqT~\fo@kH`},
			want: [][]float64{{8.68864, 49.42058, 110.5}, {8.68092, 49.41578, 112}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)

			var got [][]float64
			require.NoError(t, json.Unmarshal([]byte(out), &got), out)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDeltaSlice(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	out, err := run(t, "encode", "-120.2,38.5;-120.95,40.7")
	require.NoError(t, err)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC\n", out)

	out, err = run(t, "encode", "--precision", "6", "8.688641,49.420577;8.680916,49.415776")
	require.NoError(t, err)
	assert.Equal(t, "aqkg}Aa_iqO`kHxaN\n", out)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"bad precision", []string{"decode", "--precision", "7", "abc"}, "precision"},
		{"bad order", []string{"decode", "--order", "xy", "abc"}, "--order"},
		{"truncated", []string{"decode", "_p~iF~ps|U_ulLnnq"}, "malformed"},
		{"short tuple", []string{"encode", "1,2;3"}, "2nd coordinate"},
		{"not a number", []string{"encode", "1,2;3,x"}, "not a number"},
		{"missing elevation", []string{"encode", "--elevation", "1,2"}, "has 2 values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, shared.ExitUsage, shared.ExitCodeFor(err))
			assert.True(t, strings.Contains(err.Error(), tt.wantMsg), err.Error())
		})
	}
}
