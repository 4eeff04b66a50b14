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
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Rule names, in table order
const (
	RuleShallowRender       = "shallow-render"
	RuleMountRender         = "mount-render"
	RuleFindExistsAssertion = "find-exists-assertion"
	RuleFindSelector        = "find-selector"
	RuleTextAssertion       = "text-assertion"
	RuleTextExtraction      = "text-extraction"
	RuleHTMLExtraction      = "html-extraction"
	RuleSimulateEvent       = "simulate-event"
	RuleSetProps            = "set-props"
	RuleStateAccess         = "state-access"
	RuleInstanceAccess      = "instance-access"
)

// receiver matches `a.b.c` or `screen.getByRole('x')` in front of a chained call
const receiver = `(?:[\w$]+\.)*[\w$]+(?:\([^()]*\))?`

// roleTags are rendered as getByRole lookups
var roleTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"form":     true,
}

var bareIdentifier = regexp.MustCompile(`^\w+$`)

// defaultPatterns is the process-wide table. More specific rules come first:
// a rule removes the text it matched before the next rule scans the buffer.
var defaultPatterns = []PatternRule{
	{
		Name:        RuleShallowRender,
		Pattern:     regexp.MustCompile(`\bshallow\((\s*<)`),
		Rewrite:     rewriteShallow,
		Description: "shallow() to render()",
	},
	{
		Name:        RuleMountRender,
		Pattern:     regexp.MustCompile(`\bmount\(\s*<([A-Za-z][\w.]*)[^<]*?/>\s*\)`),
		Rewrite:     rewriteMount,
		Description: "mount() to render()",
	},
	{
		Name:        RuleFindExistsAssertion,
		Pattern:     regexp.MustCompile(`expect\(\s*(?:[\w$]+\.)*[\w$]+\.find\(\s*['"]([^'"]+)['"]\s*\)\.exists\(\)\s*\)\.toBe\(\s*(true|false)\s*\)`),
		Rewrite:     rewriteFindExists,
		Description: "find().exists() assertion to queryByTestId()",
	},
	{
		Name:        RuleFindSelector,
		Pattern:     regexp.MustCompile(`(?:[\w$]+\.)*[\w$]+\.find\(\s*['"]([^'"]+)['"]\s*\)`),
		Rewrite:     rewriteFind,
		Description: "find() to screen query",
	},
	{
		Name:        RuleTextAssertion,
		Pattern:     regexp.MustCompile(`expect\(\s*(` + receiver + `)\.text\(\)\s*\)\.toBe\(\s*([^()]*?)\s*\)`),
		Rewrite:     rewriteTextAssertion,
		Description: "text() assertion to toHaveTextContent()",
	},
	{
		Name:        RuleTextExtraction,
		Pattern:     regexp.MustCompile(`\.text\(\)`),
		Rewrite:     constant(".textContent"),
		Description: "text() to textContent",
	},
	{
		Name:        RuleHTMLExtraction,
		Pattern:     regexp.MustCompile(`\.html\(\)`),
		Rewrite:     constant(".innerHTML"),
		Description: "html() to innerHTML",
	},
	{
		Name:        RuleSimulateEvent,
		Pattern:     regexp.MustCompile(`(?:` + receiver + `)?\.simulate\(\s*['"](\w+)['"]\s*(?:,\s*([^()]*?))?\s*\)`),
		Rewrite:     rewriteSimulate,
		Description: "simulate() to userEvent/fireEvent",
	},
	{
		Name:        RuleSetProps,
		Pattern:     regexp.MustCompile(`(?:[\w$]+\.)*[\w$]+\.setProps\(\s*(\{[^;]*?\})\s*\)`),
		Rewrite:     rewriteSetProps,
		Description: "setProps() is not supported",
	},
	{
		Name:        RuleStateAccess,
		Pattern:     regexp.MustCompile(`(?:[\w$]+\.)*[\w$]+\.state\(\s*(?:['"]([^'"]*)['"])?\s*\)`),
		Rewrite:     rewriteState,
		Description: "state() is not supported",
	},
	{
		Name:        RuleInstanceAccess,
		Pattern:     regexp.MustCompile(`(?:[\w$]+\.)*[\w$]+\.instance\(\)`),
		Rewrite:     constant("// instance() is not available in React Testing Library.\n// Test behavior through the rendered output instead."),
		Description: "instance() is not supported",
	},
}

// DefaultPatterns returns an independent copy of the built-in pattern table
func DefaultPatterns() []PatternRule {
	out := make([]PatternRule, len(defaultPatterns))
	for i, r := range defaultPatterns {
		out[i] = r.clone()
	}
	return out
}

// DefaultRuleNames lists the names of the built-in pattern rules in table order
func DefaultRuleNames() []string {
	names := make([]string, len(defaultPatterns))
	for i, r := range defaultPatterns {
		names[i] = r.Name
	}
	return names
}

// ClassifySelector maps an enzyme selector to a screen query.
// Tag names on the allow-list become role lookups, bare identifiers become
// text lookups, everything else becomes a test id with one leading dot removed.
func ClassifySelector(sel string) string {
	if roleTags[strings.ToLower(sel)] {
		return fmt.Sprintf("screen.getByRole('%s')", strings.ToLower(sel))
	}
	if bareIdentifier.MatchString(sel) {
		return fmt.Sprintf("screen.getByText(/^%s$/)", sel)
	}
	return fmt.Sprintf("screen.getByTestId('%s')", strings.TrimPrefix(sel, "."))
}

func constant(s string) RewriteFunc {
	return func(string, []string) (string, error) {
		return s, nil
	}
}

// group returns the i-th capture or an error naming the shortfall
func group(groups []string, i int) (string, error) {
	if i >= len(groups) {
		return "", errors.Errorf("expected capture group %d, got %d groups", i+1, len(groups))
	}
	return groups[i], nil
}

func rewriteShallow(_ string, groups []string) (string, error) {
	open, err := group(groups, 0)
	if err != nil {
		return "", err
	}
	return "render(" + open, nil
}

func rewriteMount(_ string, groups []string) (string, error) {
	tag, err := group(groups, 0)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("render(<%s />)", tag), nil
}

// rewriteFindExists always emits the negative assertion, whatever the expected value
func rewriteFindExists(_ string, groups []string) (string, error) {
	sel, err := group(groups, 0)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("expect(screen.queryByTestId('%s')).not.toBeInTheDocument()", strings.TrimPrefix(sel, ".")), nil
}

func rewriteFind(_ string, groups []string) (string, error) {
	sel, err := group(groups, 0)
	if err != nil {
		return "", err
	}
	return ClassifySelector(sel), nil
}

func rewriteTextAssertion(_ string, groups []string) (string, error) {
	want, err := group(groups, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("expect(screen.getByText(%s)).toHaveTextContent(%s)", want, want), nil
}

func rewriteSimulate(_ string, groups []string) (string, error) {
	event, err := group(groups, 0)
	if err != nil {
		return "", err
	}

	args := "screen.getByRole('button')"
	if len(groups) > 1 && strings.TrimSpace(groups[1]) != "" {
		args += ", " + groups[1]
	}

	if event == "click" {
		return fmt.Sprintf("userEvent.click(%s)", args), nil
	}
	return fmt.Sprintf("fireEvent.%s(%s)", event, args), nil
}

func rewriteSetProps(_ string, groups []string) (string, error) {
	props, err := group(groups, 0)
	if err != nil {
		return "", err
	}
	return "// setProps() is not supported in React Testing Library.\n" +
		"// Re-render with the new props instead: rerender(<Component {..." + props + "} />)", nil
}

func rewriteState(_ string, groups []string) (string, error) {
	what := "state()"
	if len(groups) > 0 && groups[0] != "" {
		what = fmt.Sprintf("state('%s')", groups[0])
	}
	return "// " + what + " cannot be read in React Testing Library.\n" +
		"// Assert on what the user sees instead of component state.", nil
}
