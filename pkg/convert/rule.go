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

import (
	"regexp"
)

// 🏷️ ImportKind tells the header injector which import block to emit
type ImportKind int

const (
	// ImportRender marks shallow/mount imports; they need the full header with cleanup
	ImportRender ImportKind = iota
	// ImportConfig marks adapter and configure lines; they only need render
	ImportConfig
)

// String returns a string representation of ImportKind
func (k ImportKind) String() string {
	switch k {
	case ImportRender:
		return "render"
	case ImportConfig:
		return "config"
	default:
		return "unknown"
	}
}

// 📥 ImportRule matches an exact import statement
type ImportRule struct {
	Pattern     string     // Literal text to find
	Replacement string     // Text substituted for every occurrence
	Kind        ImportKind // Which header variant the match requires
}

// RewriteFunc builds the replacement for one match. groups holds the
// participating capture groups in order; groups that did not match are omitted.
type RewriteFunc func(match string, groups []string) (string, error)

// 🔄 PatternRule rewrites every match of a regular expression
type PatternRule struct {
	Name        string         // Stable identifier, used for ordering and config
	Pattern     *regexp.Regexp // Expression matched against the working text
	Rewrite     RewriteFunc    // Produces the replacement text
	Template    string         // Used when Rewrite is nil; $1 and ${name} expand against the working text
	Description string         // Human readable, surfaced in warnings
}

// replacement builds the text for the match at loc in text
func (r PatternRule) replacement(text string, loc []int, original string, groups []string) (string, error) {
	if r.Rewrite != nil {
		return r.Rewrite(original, groups)
	}
	return string(r.Pattern.ExpandString(nil, r.Template, text, loc)), nil
}

// clone copies the rule with its own compiled expression
func (r PatternRule) clone() PatternRule {
	if r.Pattern != nil {
		r.Pattern = regexp.MustCompile(r.Pattern.String())
	}
	return r
}

// 📝 ChangeKind identifies which pass produced a change
type ChangeKind string

const (
	ChangeImport     ChangeKind = "import"
	ChangeConversion ChangeKind = "conversion"
)

// Change records one applied substitution
type Change struct {
	Kind        ChangeKind `json:"kind"`
	Original    string     `json:"original"`
	Replacement string     `json:"replacement"`
	Line        int        `json:"line"`
}

// 📊 Result is the outcome of converting one buffer
type Result struct {
	Code     string   `json:"code"`
	Warnings []string `json:"warnings"`
	Changes  []Change `json:"changes"`
}

// Changed reports whether any substitution was applied
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}

// Count returns the number of changes of the given kind
func (r *Result) Count(kind ChangeKind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
