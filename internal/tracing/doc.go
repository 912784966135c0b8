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
Package tracing carries request correlation IDs and span export for routekit.

Every logical routing request gets a CorrelationID. The HTTP client stores it
in the request context, logs it with each attempt, and sends it to the
routing service as X-Request-ID:

	ctx = tracing.ToContext(ctx, tracing.NewCorrelationID())
	resp, err := client.Do(ctx, req)

The CLI enables span output with --trace, which installs a Provider that
prints spans to stderr:

	p, err := tracing.NewProvider(tracing.Config{ServiceName: "routekit"})
	if err != nil {
		return err
	}
	defer p.Shutdown(ctx)
*/
package tracing
