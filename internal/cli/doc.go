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
Package cli provides the root command and process-wide setup for the routekit CLI.

This package creates the root Cobra command, registers the persistent flags,
and configures logging and tracing before any subcommand runs. Individual
commands are implemented in the internal/commands subpackages.

# Command Tree

	routekit
	├── directions    Route between two or more locations
	├── isochrones    Reachability polygons around a location
	├── expansion     Expansion graph of a search (valhalla)
	├── matrix        Duration and distance tables
	├── optimize      Vehicle routing problem (ors)
	├── polyline      Encode and decode polylines
	├── providers     List providers and capabilities
	├── config        Show config and manage API keys
	├── version       Show version
	└── help          Show help

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	rootCmd := cli.NewRootCommand()
	// ... add commands ...
	err := cli.Execute(rootCmd)
	_ = cli.Shutdown(context.Background())
	cli.HandleExitError(err)

# Global Flags

	--config         Path to config file
	--provider, -p   Routing provider
	--json           Output in JSON format
	--jq             jq filter applied to the raw provider response
	--verbose, -v    Enable debug logging
	--trace          Print OpenTelemetry spans to stderr
	--dry-run        Print requests instead of sending them

# Exit Codes

  - 0: Success
  - 1: General error
  - 2: Invalid usage or configuration
  - 3: The provider rejected the request or failed
  - 4: Timed out, including exhausted retries
*/
package cli
