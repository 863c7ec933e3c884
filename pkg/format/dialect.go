package format

import "strings"

// Dialect selects the markdown flavor of rendered output.
type Dialect int

const (
	// DialectDiscord renders as the Discord client does: every newline is a
	// hard line break.
	DialectDiscord Dialect = iota

	// DialectMarkdown targets standard markdown renderers, which collapse
	// single newlines into spaces.
	DialectMarkdown
)

// ApplyDialect adapts Discord-flavored output to the target dialect.
// For DialectMarkdown, newlines inside a paragraph become hard line breaks
// (trailing backslash) so entry lines don't collapse into one. Blank lines
// already separate paragraphs and are left alone.
func ApplyDialect(text string, d Dialect) string {
	if d == DialectDiscord {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		if lines[i] != "" && lines[i+1] != "" {
			lines[i] += "\\"
		}
	}
	return strings.Join(lines, "\n")
}
