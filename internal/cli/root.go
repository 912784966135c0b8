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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/routekit/internal/commands/completion"
	"github.com/tombee/routekit/internal/commands/shared"
	"github.com/tombee/routekit/internal/log"
	"github.com/tombee/routekit/internal/tracing"
)

// tracer is set by --trace and flushed by Shutdown.
var tracer *tracing.Provider

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// NewRootCommand creates the root Cobra command for routekit
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routekit",
		Short: "routekit - one client for many routing engines",
		Long: `routekit queries routing engines such as OSRM, Valhalla, GraphHopper,
openrouteservice, Mapbox and Google through a single interface.

Run 'routekit providers' to see the configured providers and what they support.
Run 'routekit config set-key <provider>' to store an API key in the OS keychain
(or an encrypted file when ROUTEKIT_MASTER_KEY is set and no keychain exists).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := shared.RegisterFlagPointers()

	pf := cmd.PersistentFlags()
	pf.StringVar(flags.Config, "config", "", "Path to config file (default: ~/.config/routekit/config.yaml)")
	pf.StringVarP(flags.Provider, "provider", "p", "", "Routing provider (default: default_provider from config)")
	pf.BoolVar(flags.JSON, "json", false, "Output in JSON format")
	pf.StringVar(flags.JQ, "jq", "", "Filter the raw provider response with a jq expression")
	pf.BoolVarP(flags.Verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(flags.Trace, "trace", false, "Print OpenTelemetry spans to stderr")
	pf.BoolVar(flags.DryRun, "dry-run", false, "Print the request instead of sending it")

	_ = cmd.RegisterFlagCompletionFunc("provider", completion.CompleteProviderNames)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return shared.NewUsageError(err.Error(), err)
	})
	cmd.SetHelpCommand(NewHelpCommand(cmd))

	return cmd
}

// setup configures logging and tracing before any subcommand runs. A broken
// config file is not fatal here so that commands like version still work;
// commands that need the config report the error themselves.
func setup(cmd *cobra.Command, _ []string) error {
	logCfg := log.FromEnv()
	logCfg.Output = cmd.ErrOrStderr()

	if cfg, err := shared.LoadConfig(); err == nil {
		if cfg.Log.Level != "" && !levelFromEnv() {
			logCfg.Level = cfg.Log.Level
		}
		if cfg.Log.Format != "" && os.Getenv("LOG_FORMAT") == "" {
			logCfg.Format = log.Format(strings.ToLower(cfg.Log.Format))
		}
	}
	if shared.GetVerbose() {
		logCfg.Level = "debug"
	}
	slog.SetDefault(log.New(logCfg))

	if shared.GetTrace() && tracer == nil {
		version, _, _ := shared.GetVersion()
		tp, err := tracing.NewProvider(tracing.Config{
			ServiceName:    "routekit",
			ServiceVersion: version,
			Writer:         cmd.ErrOrStderr(),
			PrettyPrint:    true,
		})
		if err != nil {
			return fmt.Errorf("start tracing: %w", err)
		}
		tracer = tp
	}

	return shared.ValidateJQ()
}

func levelFromEnv() bool {
	for _, key := range []string{"ROUTEKIT_DEBUG", "ROUTEKIT_LOG_LEVEL", "LOG_LEVEL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// Shutdown flushes spans recorded under --trace.
func Shutdown(ctx context.Context) error {
	if tracer == nil {
		return nil
	}
	err := tracer.Shutdown(ctx)
	tracer = nil
	return err
}

// Execute runs the root command. Cobra's unknown-command and argument
// errors are reported as usage errors.
func Execute(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.Contains(msg, "arg(s)") {
		return shared.NewUsageError(msg, err)
	}
	return err
}

// HandleExitError prints err and exits with the matching exit code.
func HandleExitError(err error) {
	if err == nil {
		return
	}
	shared.PrintError(os.Stderr, err)
	os.Exit(shared.ExitCodeFor(err))
}
