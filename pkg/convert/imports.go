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

// headerMarker is present in any file that already imports the testing library
const headerMarker = "from '@testing-library/react'"

const renderHeader = `import { render, screen, fireEvent, cleanup } from '@testing-library/react';
import userEvent from '@testing-library/user-event';
import '@testing-library/jest-dom';

afterEach(() => {
  cleanup();
});

`

const configHeader = `import { render } from '@testing-library/react';

`

// defaultImports is never handed out directly; DefaultImports copies it
var defaultImports = []ImportRule{
	{
		Pattern:     "import { shallow, mount } from 'enzyme';",
		Replacement: "// enzyme shallow/mount import removed: use render from React Testing Library",
		Kind:        ImportRender,
	},
	{
		Pattern:     "import { mount, shallow } from 'enzyme';",
		Replacement: "// enzyme mount/shallow import removed: use render from React Testing Library",
		Kind:        ImportRender,
	},
	{
		Pattern:     "import { shallow } from 'enzyme';",
		Replacement: "// enzyme shallow import removed: use render from React Testing Library",
		Kind:        ImportRender,
	},
	{
		Pattern:     "import { mount } from 'enzyme';",
		Replacement: "// enzyme mount import removed: use render from React Testing Library",
		Kind:        ImportRender,
	},
	{
		Pattern:     "Enzyme.configure({ adapter: new Adapter() });",
		Replacement: "// Enzyme.configure removed: React Testing Library needs no adapter",
		Kind:        ImportConfig,
	},
	{
		Pattern:     "import Adapter from 'enzyme-adapter-react-16';",
		Replacement: "// enzyme-adapter-react-16 removed: React Testing Library needs no adapter",
		Kind:        ImportConfig,
	},
	{
		Pattern:     "import Adapter from 'enzyme-adapter-react-17';",
		Replacement: "// enzyme-adapter-react-17 removed: React Testing Library needs no adapter",
		Kind:        ImportConfig,
	},
}

// DefaultImports returns a copy of the built-in import table
func DefaultImports() []ImportRule {
	out := make([]ImportRule, len(defaultImports))
	copy(out, defaultImports)
	return out
}

// buildHeader picks the header block for the kinds of import that matched
func buildHeader(sawRender bool) string {
	if sawRender {
		return renderHeader
	}
	return configHeader
}

// injectHeader prepends the header unless one is already there
func injectHeader(code string, sawRender bool) string {
	if strings.Contains(code, headerMarker) {
		return code
	}
	return buildHeader(sawRender) + code
}
