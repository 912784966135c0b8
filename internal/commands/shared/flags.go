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

// Global flag values - set by root command
var (
	verboseFlag  bool
	jsonFlag     bool
	configFlag   string
	providerFlag string
	jqFlag       string
	traceFlag    bool
	dryRunFlag   bool

	// Build-time version information
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Flags holds pointers to the persistent flag variables for binding.
type Flags struct {
	Verbose  *bool
	JSON     *bool
	Config   *string
	Provider *string
	JQ       *string
	Trace    *bool
	DryRun   *bool
}

// RegisterFlagPointers returns pointers to flag variables for binding.
// Called by root command to register flags.
func RegisterFlagPointers() Flags {
	return Flags{
		Verbose:  &verboseFlag,
		JSON:     &jsonFlag,
		Config:   &configFlag,
		Provider: &providerFlag,
		JQ:       &jqFlag,
		Trace:    &traceFlag,
		DryRun:   &dryRunFlag,
	}
}

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return version, commit, buildDate
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verboseFlag
}

// GetJSON returns the JSON output flag value
func GetJSON() bool {
	return jsonFlag
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return configFlag
}

// GetProvider returns the --provider flag value
func GetProvider() string {
	return providerFlag
}

// GetJQ returns the --jq expression
func GetJQ() string {
	return jqFlag
}

// GetTrace returns the trace flag value
func GetTrace() bool {
	return traceFlag
}

// GetDryRun returns the dry-run flag value
func GetDryRun() bool {
	return dryRunFlag
}

// ResetFlagsForTest restores every global flag to its zero value.
func ResetFlagsForTest() {
	verboseFlag = false
	jsonFlag = false
	configFlag = ""
	providerFlag = ""
	jqFlag = ""
	traceFlag = false
	dryRunFlag = false
	loadedConfig = nil
}
