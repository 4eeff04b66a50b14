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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 45 // Base width for filename
	statusWidth  = 10 // Width for status text
	changesWidth = 12 // Width for change count
)

// 🎯 FormatFileLine formats a file result as an aligned console row
func FormatFileLine(path string, st FileStatus, changes int) string {
	// Determine prefix symbol
	var prefix string
	switch st {
	case StatusConverted:
		prefix = color.GreenString("✓")
	case StatusPending:
		prefix = color.YellowString("⟳")
	case StatusFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.HiBlackString("-")
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, path)
	statusPart := fmt.Sprintf("%-*s", statusWidth, st.String())
	changesPart := fmt.Sprintf("%-*s", changesWidth, plural(changes, "change"))

	// Build final string with indentation
	line := fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		statusPart,
		changesPart,
	)
	return strings.TrimRight(line, " ")
}
