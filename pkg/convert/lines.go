// Copyright 2025 walteh LLC
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

package convert

import "strings"

// fallbackLine is reported when a fragment cannot be found line by line
const fallbackLine = 1

// lineOf returns the 1-based number of the first line containing fragment.
// Multi-line fragments are located by their first line.
func lineOf(text, fragment string) int {
	needle, _, _ := strings.Cut(fragment, "\n")
	if needle == "" {
		return fallbackLine
	}
	for i, line := range strings.Split(text, "\n") {
		if strings.Contains(line, needle) {
			return i + 1
		}
	}
	return fallbackLine
}
