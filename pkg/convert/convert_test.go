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
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestConvert_Patterns(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		want        string
		contains    []string
		notContains []string
		wantChanges int
	}{
		{
			name:        "shallow_render",
			source:      `const wrapper = shallow(<App title="x" />);`,
			want:        `const wrapper = render(<App title="x" />);`,
			wantChanges: 1,
		},
		{
			name:        "mount_self_closing",
			source:      `const wrapper = mount(<App title="x" onClick={() => go()} />);`,
			want:        `const wrapper = render(<App />);`,
			wantChanges: 1,
		},
		{
			name:        "mount_with_children_is_left_alone",
			source:      "const wrapper = mount(<App>\n  <Child />\n</App>);",
			want:        "const wrapper = mount(<App>\n  <Child />\n</App>);",
			wantChanges: 0,
		},
		{
			name:        "find_tag_uses_role",
			source:      `const b = wrapper.find('button');`,
			want:        `const b = screen.getByRole('button');`,
			wantChanges: 1,
		},
		{
			name:        "find_tag_is_case_insensitive",
			source:      `const f = wrapper.find('FORM');`,
			contains:    []string{"getByRole('form')"},
			wantChanges: 1,
		},
		{
			name:        "find_class_uses_test_id",
			source:      `const b = wrapper.find('.submit-button');`,
			contains:    []string{"getByTestId('submit-button')"},
			wantChanges: 1,
		},
		{
			name:        "find_id_keeps_hash",
			source:      `const b = wrapper.find('#main');`,
			contains:    []string{"getByTestId('#main')"},
			wantChanges: 1,
		},
		{
			name:        "find_identifier_uses_text",
			source:      `const h = wrapper.find('Header');`,
			contains:    []string{"getByText(/^Header$/)"},
			wantChanges: 1,
		},
		{
			name:        "exists_assertion_wins_over_find",
			source:      `expect(wrapper.find('.button').exists()).toBe(true);`,
			want:        `expect(screen.queryByTestId('button')).not.toBeInTheDocument();`,
			contains:    []string{"queryByTestId('button')", "not.toBeInTheDocument()"},
			notContains: []string{"getByTestId", "getByText"},
			wantChanges: 1,
		},
		{
			name:        "simulate_click",
			source:      `wrapper.find('button').simulate('click');`,
			want:        `userEvent.click(screen.getByRole('button'));`,
			wantChanges: 2,
		},
		{
			name:        "simulate_change_forwards_data",
			source:      `wrapper.find('input').simulate('change', { target: { value: 'x' } });`,
			want:        `fireEvent.change(screen.getByRole('button'), { target: { value: 'x' } });`,
			contains:    []string{"fireEvent.change(", "{ target: { value: 'x' } }"},
			wantChanges: 2,
		},
		{
			name:        "simulate_click_forwards_data",
			source:      `button.simulate('click', { button: 0 });`,
			want:        `userEvent.click(screen.getByRole('button'), { button: 0 });`,
			wantChanges: 1,
		},
		{
			name:        "text_extraction",
			source:      `const t = wrapper.find('.title').text();`,
			want:        `const t = screen.getByTestId('title').textContent;`,
			wantChanges: 2,
		},
		{
			name:        "text_assertion",
			source:      `expect(wrapper.find('.title').text()).toBe('Hello');`,
			want:        `expect(screen.getByText('Hello')).toHaveTextContent('Hello');`,
			notContains: []string{"textContent;"},
			wantChanges: 2,
		},
		{
			name:        "html_extraction",
			source:      `const h = wrapper.html();`,
			want:        `const h = wrapper.innerHTML;`,
			wantChanges: 1,
		},
		{
			name:        "set_props_comment",
			source:      `wrapper.setProps({ name: 'x' });`,
			contains:    []string{"// setProps() is not supported", "{ name: 'x' }"},
			notContains: []string{"wrapper.setProps"},
			wantChanges: 1,
		},
		{
			name:        "state_comment",
			source:      `const s = wrapper.state('count');`,
			contains:    []string{"// state('count') cannot be read"},
			notContains: []string{"wrapper.state"},
			wantChanges: 1,
		},
		{
			name:        "instance_comment",
			source:      `wrapper.instance().handle();`,
			contains:    []string{"// instance() is not available"},
			notContains: []string{"wrapper.instance()"},
			wantChanges: 1,
		},
		{
			name:        "multiple_matches_of_one_rule",
			source:      "a.html();\nb.html();",
			want:        "a.innerHTML;\nb.innerHTML;",
			wantChanges: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New().Convert(testContext(t), tt.source)
			require.NotNil(t, res)

			if tt.want != "" {
				assert.Equal(t, tt.want, res.Code, "converted code should match")
			}
			for _, s := range tt.contains {
				assert.Contains(t, res.Code, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, res.Code, s)
			}
			assert.Len(t, res.Changes, tt.wantChanges, "change count should match")
			assert.Len(t, res.Warnings, tt.wantChanges, "one warning per change")
			for _, c := range res.Changes {
				assert.Equal(t, ChangeConversion, c.Kind)
			}
		})
	}
}

func TestConvert_Imports(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		wantImports  int
		wantContains []string
		wantMissing  []string
	}{
		{
			name:        "shallow_import_adds_full_header",
			source:      "import React from 'react';\nimport { shallow } from 'enzyme';\n",
			wantImports: 1,
			wantContains: []string{
				"import { render, screen, fireEvent, cleanup } from '@testing-library/react';",
				"import userEvent from '@testing-library/user-event';",
				"cleanup();",
				"// enzyme shallow import removed",
			},
			wantMissing: []string{"from 'enzyme'"},
		},
		{
			name:        "combined_import",
			source:      "import { shallow, mount } from 'enzyme';\n",
			wantImports: 1,
			wantContains: []string{
				"afterEach(",
				"// enzyme shallow/mount import removed",
			},
		},
		{
			name:        "config_only_adds_minimal_header",
			source:      "import Adapter from 'enzyme-adapter-react-16';\nEnzyme.configure({ adapter: new Adapter() });\n",
			wantImports: 2,
			wantContains: []string{
				"import { render } from '@testing-library/react';",
			},
			wantMissing: []string{"cleanup", "userEvent", "fireEvent"},
		},
		{
			name:        "render_and_config_use_full_header",
			source:      "import { mount } from 'enzyme';\nimport Adapter from 'enzyme-adapter-react-17';\n",
			wantImports: 2,
			wantContains: []string{
				"cleanup();",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New().Convert(testContext(t), tt.source)

			assert.Equal(t, tt.wantImports, res.Count(ChangeImport), "import change count should match")
			assert.Equal(t, 0, res.Count(ChangeConversion), "no pattern rule should fire")
			for _, s := range tt.wantContains {
				assert.Contains(t, res.Code, s)
			}
			for _, s := range tt.wantMissing {
				assert.NotContains(t, res.Code, s)
			}
			for _, w := range res.Warnings {
				assert.True(t, strings.HasPrefix(w, "Converted import: "), "warning %q should name the import", w)
			}
		})
	}
}

func TestConvert_ImportLineNumber(t *testing.T) {
	src := "import React from 'react';\n\nimport { mount } from 'enzyme';\n"
	res := New().Convert(testContext(t), src)

	require.Len(t, res.Changes, 1)
	assert.Equal(t, 3, res.Changes[0].Line)
	assert.Equal(t, "import { mount } from 'enzyme';", res.Changes[0].Original)
}

func TestConvert_MultiLineMatchLine(t *testing.T) {
	src := "const a = 1;\n\nwrapper.setProps({\n  a: 1\n});\n"
	res := New().Convert(testContext(t), src)

	require.Len(t, res.Changes, 1)
	assert.True(t, strings.HasPrefix(res.Changes[0].Original, "wrapper.setProps({\n"))
	assert.Equal(t, 3, res.Changes[0].Line, "multi-line matches report the line they start on")
}

func TestConvert_TextAssertionBeforeExtraction(t *testing.T) {
	src := `expect(wrapper.text()).toBe('Hi');`

	t.Run("assertion_rule_claims_the_call", func(t *testing.T) {
		res := New().Convert(testContext(t), src)
		assert.Equal(t, `expect(screen.getByText('Hi')).toHaveTextContent('Hi');`, res.Code)
		assert.Equal(t, []string{"Converted: text() assertion to toHaveTextContent()"}, res.Warnings)
	})

	t.Run("extraction_only_without_assertion_rule", func(t *testing.T) {
		res := New().Disable(RuleTextAssertion).Convert(testContext(t), src)
		assert.Equal(t, `expect(wrapper.textContent).toBe('Hi');`, res.Code)
		assert.Equal(t, []string{"Converted: text() to textContent"}, res.Warnings)
	})
}

func TestConvert_TemplateRule(t *testing.T) {
	c := New().AddPattern(PatternRule{
		Name:        "old-suffix",
		Pattern:     regexp.MustCompile(`(\w+)_old\B`),
		Template:    "${1}_new",
		Description: "old suffix",
	})

	res := c.Convert(testContext(t), "render_oldStyle(); render_old();")
	assert.Equal(t, "render_newStyle(); render_old();", res.Code, "expansion sees the text around the match")
	require.Len(t, res.Changes, 1)
	assert.Equal(t, "render_old", res.Changes[0].Original)
}

func TestConvert_HeaderNotDuplicated(t *testing.T) {
	ctx := testContext(t)
	c := New()

	t.Run("existing_marker", func(t *testing.T) {
		src := "import { render } from '@testing-library/react';\nimport { shallow } from 'enzyme';\n"
		res := c.Convert(ctx, src)
		assert.Equal(t, 1, strings.Count(res.Code, "from '@testing-library/react'"))
		assert.Equal(t, 1, res.Count(ChangeImport))
	})

	t.Run("second_conversion", func(t *testing.T) {
		first := c.Convert(ctx, "import { shallow } from 'enzyme';\n")
		second := c.Convert(ctx, first.Code)
		assert.Equal(t, 1, strings.Count(second.Code, "import userEvent"))
		assert.Equal(t, first.Code, second.Code)
		assert.Empty(t, second.Changes)
	})
}

func TestConvert_NoMatch(t *testing.T) {
	for _, src := range []string{
		"",
		"const x = 1;\nfunction add(a, b) { return a + b; }\n",
		"import React from 'react';\n",
	} {
		res := New().Convert(testContext(t), src)
		assert.Equal(t, src, res.Code)
		assert.Empty(t, res.Changes)
		assert.Empty(t, res.Warnings)
	}
}

func TestConvert_FirstOccurrenceReplacement(t *testing.T) {
	// the rule only matches the second line, but the first plain occurrence
	// of the matched text is the one that gets rewritten
	c := New().AddPattern(PatternRule{
		Name:        "line-foo",
		Pattern:     regexp.MustCompile(`(?m)^foo$`),
		Rewrite:     constant("bar"),
		Description: "foo line",
	})

	res := c.Convert(testContext(t), "xfoo\nfoo")
	assert.Equal(t, "xbar\nfoo", res.Code)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, 1, res.Changes[0].Line)
}

func TestConvert_FailingRuleIsSkipped(t *testing.T) {
	tests := []struct {
		name    string
		rewrite RewriteFunc
	}{
		{
			name: "panics",
			rewrite: func(string, []string) (string, error) {
				panic("boom")
			},
		},
		{
			name: "returns_error",
			rewrite: func(string, []string) (string, error) {
				return "", errors.New("boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New().
				AddPattern(PatternRule{Name: "bad", Pattern: regexp.MustCompile(`foo`), Rewrite: tt.rewrite, Description: "bad"}).
				AddPattern(PatternRule{Name: "good", Pattern: regexp.MustCompile(`bar`), Rewrite: constant("baz"), Description: "good"})

			var res *Result
			require.NotPanics(t, func() {
				res = c.Convert(testContext(t), "foo bar foo")
			})
			assert.Equal(t, "foo baz foo", res.Code)
			assert.Equal(t, []string{"Converted: good"}, res.Warnings)
		})
	}
}

func TestConvert_RuleWithoutPattern(t *testing.T) {
	c := New().AddPattern(PatternRule{Name: "empty"})
	res := c.Convert(testContext(t), "wrapper.html()")
	assert.Equal(t, "wrapper.innerHTML", res.Code)
}

func TestConverter_Isolation(t *testing.T) {
	ctx := testContext(t)
	custom := PatternRule{
		Name:        "hello",
		Pattern:     regexp.MustCompile(`hello`),
		Rewrite:     constant("world"),
		Description: "hello to world",
	}

	a := New()
	b := New()
	a.AddPattern(custom)

	assert.Equal(t, "world", a.Convert(ctx, "hello").Code)
	assert.Equal(t, "hello", b.Convert(ctx, "hello").Code, "other converter must not see the custom rule")
	assert.Len(t, DefaultPatterns(), len(b.Patterns()))

	a.ResetPatterns()
	res := a.Convert(ctx, "hello")
	assert.Equal(t, "hello", res.Code, "reset should drop custom rules")
	assert.Empty(t, res.Changes)
}

func TestConverter_ClonesExpressions(t *testing.T) {
	a := New().Patterns()
	b := New().Patterns()
	for i := range a {
		assert.NotSame(t, a[i].Pattern, b[i].Pattern, "rule %s should not share its expression", a[i].Name)
		assert.Equal(t, a[i].Pattern.String(), b[i].Pattern.String())
	}
}

func TestConverter_Disable(t *testing.T) {
	ctx := testContext(t)
	c := New(WithDisabled(RuleHTMLExtraction))

	assert.Equal(t, "wrapper.html()", c.Convert(ctx, "wrapper.html()").Code)
	assert.Len(t, c.Patterns(), len(defaultPatterns)-1)
	assert.Len(t, DefaultPatterns(), len(defaultPatterns), "default table must not change")

	c.ResetPatterns()
	assert.Equal(t, "wrapper.innerHTML", c.Convert(ctx, "wrapper.html()").Code)
}

func TestConverter_ChainedAdd(t *testing.T) {
	c := New(WithPatterns(PatternRule{Name: "x", Pattern: regexp.MustCompile(`x`), Rewrite: constant("y"), Description: "x"}))
	same := c.AddPattern(PatternRule{Name: "y", Pattern: regexp.MustCompile(`y`), Rewrite: constant("z"), Description: "y"})
	assert.Same(t, c, same)
	assert.Equal(t, "z", c.Convert(testContext(t), "x").Code)
}
