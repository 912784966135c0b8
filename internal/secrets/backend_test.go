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


package secrets

import "testing"

func TestParseProviderKey(t *testing.T) {
	tests := []struct {
		key      string
		provider string
		ok       bool
	}{
		{ProviderKey("ors"), "ors", true},
		{"providers/graphhopper/api_key", "graphhopper", true},
		{"providers//api_key", "", false},
		{"providers/a/b/api_key", "", false},
		{"providers/ors/token", "", false},
		{"ors", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			provider, ok := ParseProviderKey(tt.key)
			if provider != tt.provider || ok != tt.ok {
				t.Errorf("ParseProviderKey(%q) = %q, %v, want %q, %v", tt.key, provider, ok, tt.provider, tt.ok)
			}
		})
	}

	if got := storageAccount(ProviderKey("mapbox")); got != "mapbox" {
		t.Errorf("storageAccount() = %q, want mapbox", got)
	}
	if got := storageAccount("custom/key"); got != "custom/key" {
		t.Errorf("storageAccount() = %q, want custom/key", got)
	}
}
