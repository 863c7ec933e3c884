// Package format renders taxa and taxon listings as Discord-flavoured
// markdown. The entry point for listings is [Renderer]; single names are
// formatted with [TaxonName].
package format

import (
	"fmt"
	"regexp"
)

var (
	urlPat    = regexp.MustCompile(`<[^: >]+:/[^ >]+>|(?:https?|steam)://[^\s<]+[^<.,:;"'\]\s]`)
	escapePat = regexp.MustCompile(
		`(?m)(<[^: >]+:/[^ >]+>|(?:https?|steam)://[^\s<]+[^<.,:;"'\]\s])|([_\\~|*` + "`" + `]|^>(?:>>)?\s|\[.+\]\(.+\))`,
	)
	leadingBlanksPat = regexp.MustCompile(`^( +)`)
)

// EscapeMarkdown backslash-escapes markdown metacharacters in text so taxon
// and place names render literally. URLs embedded in the text are left
// intact.
func EscapeMarkdown(text string) string {
	return escapePat.ReplaceAllStringFunc(text, func(match string) string {
		if urlPat.MatchString(match) && urlPat.FindString(match) == match {
			return match
		}
		return "\\" + match
	})
}

// ProtectLeadingBlanks wraps leading spaces in bold markers preceded by a
// zero-width space, preventing clients from trimming indentation.
func ProtectLeadingBlanks(text string) string {
	return leadingBlanksPat.ReplaceAllString(text, "​**$1**")
}

// Link renders a markdown link, or just the text when url is empty.
func Link(text, url string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("[%s](%s)", text, url)
}
