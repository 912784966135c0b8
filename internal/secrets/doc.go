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
/*
Package secrets resolves provider API keys for the routekit CLI.

Keys are looked up under "providers/<name>/api_key" through a
priority-ordered chain of backends:

	env      - ROUTEKIT_SECRET_PROVIDERS_<NAME>_API_KEY, <NAME>_API_KEY and
	           service-specific names such as MAPBOX_ACCESS_TOKEN
	keychain - OS keychain (macOS Keychain, Linux Secret Service,
	           Windows Credential Manager), service "routekit",
	           one entry per provider name
	file     - credentials.enc in the config directory, AES-256-GCM
	           encrypted with a key derived from ROUTEKIT_MASTER_KEY
	           (or master.key) using Argon2id

# Usage

	resolver := secrets.NewDefaultResolver(configDir)
	key, err := resolver.Get(ctx, secrets.ProviderKey("ors"))

"routekit config set-key" writes to the keychain backend, or to the
encrypted file when no keychain service is reachable.
*/
package secrets
