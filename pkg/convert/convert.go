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
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Converter rewrites enzyme test code into React Testing Library code.
// Convert does not mutate the converter, so concurrent Convert calls are safe
// as long as nobody calls AddPattern, Disable or ResetPatterns at the same time.
type Converter struct {
	imports  []ImportRule
	patterns []PatternRule
}

// Option configures a Converter at construction
type Option func(*Converter)

// WithPatterns appends rules after the default table
func WithPatterns(rules ...PatternRule) Option {
	return func(c *Converter) {
		c.AddPattern(rules...)
	}
}

// WithDisabled removes default rules by name
func WithDisabled(names ...string) Option {
	return func(c *Converter) {
		c.Disable(names...)
	}
}

// 🏭 New creates a converter holding its own copy of the default tables
func New(opts ...Option) *Converter {
	c := &Converter{
		imports:  DefaultImports(),
		patterns: DefaultPatterns(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddPattern appends rules to this converter only
func (c *Converter) AddPattern(rules ...PatternRule) *Converter {
	c.patterns = append(c.patterns, rules...)
	return c
}

// ResetPatterns drops every custom rule and restores the default table
func (c *Converter) ResetPatterns() *Converter {
	c.patterns = DefaultPatterns()
	return c
}

// Disable removes rules with the given names
func (c *Converter) Disable(names ...string) *Converter {
	if len(names) == 0 {
		return c
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := make([]PatternRule, 0, len(c.patterns))
	for _, r := range c.patterns {
		if !drop[r.Name] {
			kept = append(kept, r)
		}
	}
	c.patterns = kept
	return c
}

// Patterns returns a snapshot of the active rule list
func (c *Converter) Patterns() []PatternRule {
	out := make([]PatternRule, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Imports returns a snapshot of the import table
func (c *Converter) Imports() []ImportRule {
	out := make([]ImportRule, len(c.imports))
	copy(out, c.imports)
	return out
}

// 🔄 Convert runs the import pass, header injection and pattern pass over source.
// It never fails; a rule whose rewrite errors or panics is skipped for the
// rest of the pass and logged through the context logger.
func (c *Converter) Convert(ctx context.Context, source string) *Result {
	res := &Result{
		Code:     source,
		Warnings: []string{},
		Changes:  []Change{},
	}

	c.applyImports(ctx, res)

	for _, rule := range c.patterns {
		if err := applyPattern(res, rule); err != nil {
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("rule", rule.Name).
				Msg("skipping rule")
		}
	}

	return res
}

func (c *Converter) applyImports(ctx context.Context, res *Result) {
	matched, sawRender := false, false

	for _, imp := range c.imports {
		if imp.Pattern == "" || !strings.Contains(res.Code, imp.Pattern) {
			continue
		}

		res.Changes = append(res.Changes, Change{
			Kind:        ChangeImport,
			Original:    imp.Pattern,
			Replacement: imp.Replacement,
			Line:        lineOf(res.Code, imp.Pattern),
		})
		res.Code = strings.ReplaceAll(res.Code, imp.Pattern, imp.Replacement)
		res.Warnings = append(res.Warnings, fmt.Sprintf("Converted import: %s", imp.Pattern))

		matched = true
		if imp.Kind == ImportRender {
			sawRender = true
		}

		zerolog.Ctx(ctx).Debug().Str("import", imp.Pattern).Str("kind", imp.Kind.String()).Msg("import converted")
	}

	if matched {
		res.Code = injectHeader(res.Code, sawRender)
	}
}

// applyPattern rewrites every match of rule in the working text. Matches are
// found once against the current text and then resolved from the end of the
// buffer toward the start. Each replacement targets the first occurrence of the
// matched text, so an identical fragment earlier in the buffer is rewritten first.
func applyPattern(res *Result, rule PatternRule) (err error) {
	if rule.Pattern == nil || (rule.Rewrite == nil && rule.Template == "") {
		return errors.Errorf("rule %q has no pattern or rewrite", rule.Name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("rewrite panicked: %v", r)
		}
	}()

	text := res.Code
	matches := rule.Pattern.FindAllStringSubmatchIndex(text, -1)

	for i := len(matches) - 1; i >= 0; i-- {
		loc := matches[i]
		original := text[loc[0]:loc[1]]
		if original == "" {
			continue
		}

		groups := make([]string, 0, len(loc)/2-1)
		for g := 2; g+1 < len(loc); g += 2 {
			if loc[g] < 0 {
				continue
			}
			groups = append(groups, text[loc[g]:loc[g+1]])
		}

		replacement, rerr := rule.replacement(text, loc, original, groups)
		if rerr != nil {
			return errors.Errorf("rewriting %q: %w", original, rerr)
		}
		if replacement == original {
			continue
		}

		res.Changes = append(res.Changes, Change{
			Kind:        ChangeConversion,
			Original:    original,
			Replacement: replacement,
			Line:        lineOf(res.Code, original),
		})
		res.Warnings = append(res.Warnings, fmt.Sprintf("Converted: %s", rule.Description))
		res.Code = strings.Replace(res.Code, original, replacement, 1)
	}

	return nil
}
