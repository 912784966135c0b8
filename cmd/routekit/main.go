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

package main

import (
	"context"
	"time"

	"github.com/tombee/routekit/internal/cli"
	"github.com/tombee/routekit/internal/commands/completion"
	"github.com/tombee/routekit/internal/commands/config"
	"github.com/tombee/routekit/internal/commands/polyline"
	"github.com/tombee/routekit/internal/commands/provider"
	"github.com/tombee/routekit/internal/commands/routing"
	versioncmd "github.com/tombee/routekit/internal/commands/version"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildDate)

	rootCmd := cli.NewRootCommand()

	// Routing operations
	rootCmd.AddCommand(routing.NewDirectionsCommand())
	rootCmd.AddCommand(routing.NewIsochronesCommand())
	rootCmd.AddCommand(routing.NewExpansionCommand())
	rootCmd.AddCommand(routing.NewMatrixCommand())
	rootCmd.AddCommand(routing.NewOptimizationCommand())

	// Offline tools
	rootCmd.AddCommand(polyline.NewPolylineCommand())

	// Configuration
	rootCmd.AddCommand(provider.NewProvidersCommand())
	rootCmd.AddCommand(config.NewConfigCommand())
	rootCmd.AddCommand(completion.NewCommand())
	rootCmd.AddCommand(versioncmd.NewVersionCommand())

	err := cli.Execute(rootCmd)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = cli.Shutdown(ctx)
	cancel()

	cli.HandleExitError(err)
}
