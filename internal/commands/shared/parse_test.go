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
	"reflect"
	"strings"
	"testing"
)

func TestParseFloats(t *testing.T) {
	got, err := ParseFloats("intervals", "300, 600,900.5")
	if err != nil {
		t.Fatalf("ParseFloats() error = %v", err)
	}
	if want := []float64{300, 600, 900.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFloats() = %v, want %v", got, want)
	}

	got, err = ParseFloats("intervals", "")
	if err != nil || got != nil {
		t.Errorf("ParseFloats(\"\") = %v, %v; want nil, nil", got, err)
	}

	_, err = ParseFloats("intervals", "300,abc")
	if err == nil || !strings.Contains(err.Error(), "the 2nd value") {
		t.Errorf("ParseFloats() error = %v, want ordinal position", err)
	}
	if ExitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d", ExitCodeFor(err), ExitUsage)
	}
}

func TestParseInts(t *testing.T) {
	got, err := ParseInts("sources", "0,2")
	if err != nil {
		t.Fatalf("ParseInts() error = %v", err)
	}
	if want := []int{0, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("ParseInts() = %v, want %v", got, want)
	}

	_, err = ParseInts("sources", "1.5")
	if err == nil || !strings.Contains(err.Error(), "the 1st value") {
		t.Errorf("ParseInts() error = %v", err)
	}
}

func TestParseLocationsFlag(t *testing.T) {
	locs, err := ParseLocationsFlag("locations", "8.68,49.41;8.69,49.42")
	if err != nil {
		t.Fatalf("ParseLocationsFlag() error = %v", err)
	}
	if len(locs) != 2 || locs[1].Lon != 8.69 || locs[1].Lat != 49.42 {
		t.Errorf("ParseLocationsFlag() = %v", locs)
	}

	_, err = ParseLocationsFlag("locations", "8.68,49.41;oops")
	if ExitCodeFor(err) != ExitUsage {
		t.Errorf("ParseLocationsFlag() error = %v, want usage error", err)
	}
	if !strings.Contains(err.Error(), "2nd location") {
		t.Errorf("error = %v, want position", err)
	}
}
