// Package sanitize normalizes user-submitted secret text before validation.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     = bluemonday.StrictPolicy()
	whitespace = regexp.MustCompile(`\s+`)
)

// Clean strips all HTML markup, collapses whitespace runs into single spaces
// and trims the result. The returned string may be empty.
func Clean(input string) string {
	stripped := html.UnescapeString(policy.Sanitize(input))
	return strings.TrimSpace(whitespace.ReplaceAllString(stripped, " "))
}

// ContainsBlockedWords reports whether content matches any blocked word,
// case-insensitively, as a substring.
func ContainsBlockedWords(content string, blockedWords []string) bool {
	haystack := strings.ToLower(content)
	for _, word := range blockedWords {
		w := strings.ToLower(strings.TrimSpace(word))
		if w == "" {
			continue
		}
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}
