/*
Package convert rewrites enzyme tests into React Testing Library tests.

	+---------------+     +----------------+     +----------------+
	|  Import pass  | --> |  Header inject | --> |  Pattern pass  |
	| (literal text)|     |  (once, marker)|     | (ordered regex)|
	+---------------+     +----------------+     +----------------+

🎯 Purpose:
- Swap enzyme imports and adapter setup for testing-library imports
- Rewrite wrapper calls (shallow, mount, find, simulate, text, html)
- Leave an explanatory comment where no equivalent exists (setProps, state, instance)

🔄 Flow:
1. Every import rule whose literal text appears is replaced everywhere
2. If any matched, a header is prepended unless the file already imports
   from '@testing-library/react'. Render imports add an afterEach cleanup hook
3. Pattern rules run in table order. Each one scans the text left by the
   previous rules and resolves its matches right to left

⚠️ Limitations:
- Matching is lexical. Nested or multi-line calls are often left as they are
- Each match replaces the first occurrence of its text in the buffer, so
  repeated identical fragments are rewritten from the top of the file
- Output is not guaranteed to be stable under a second conversion

Rules are plain values. A Converter owns a private copy of the default
table, so AddPattern and ResetPatterns on one converter never affect another.
*/
package convert
