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

// Package routing defines the provider-independent model shared by every
// routekit adapter: locations, request parameters, result types and the
// capability interfaces a router may implement.
//
// Coordinates are always longitude first. Distances are meters, durations
// are seconds. Result types keep the decoded provider response in Raw so
// callers can reach fields the common model does not carry.
package routing
