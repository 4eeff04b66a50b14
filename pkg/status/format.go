package status

import (
	"fmt"
)

// FileFormatter defines how file results and run summaries are formatted
type FileFormatter interface {
	// FormatFileOperation formats the result for one file
	FormatFileOperation(path string, st FileStatus, changes int) string

	// FormatSummary formats the totals for a run
	FormatSummary(s Summary) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file result with emojis
func (f *DefaultFileFormatter) FormatFileOperation(path string, st FileStatus, changes int) string {
	switch st {
	case StatusConverted:
		return fmt.Sprintf("📝 Converted %s (%s)", path, plural(changes, "change"))
	case StatusPending:
		return fmt.Sprintf("👀 Would convert %s (%s)", path, plural(changes, "change"))
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatSummary formats run totals
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	icon := "✅"
	if s.HasFailures() {
		icon = "❌"
	}
	return fmt.Sprintf("%s %s: %d converted, %d pending, %d unchanged, %d failed (%s)",
		icon, plural(s.Files, "file"), s.Converted, s.Pending, s.Unchanged, s.Failed, plural(s.Changes, "change"))
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
