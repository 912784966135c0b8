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

package routing

// Ordinal returns the English ordinal suffix of n: "st" for 1, "nd" for 2,
// "rd" for 3 and "th" otherwise. 11, 12 and 13 (and 111, 112, ...) take
// "th".
func Ordinal(n int) string {
	if n < 0 {
		n = -n
	}
	if mod := n % 100; mod >= 11 && mod <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
