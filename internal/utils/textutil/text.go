// Package textutil derives excerpt and reading-time values from blog content.
package textutil

import (
	"regexp"
	"strings"
)

const (
	wordsPerMinute = 200
	excerptLength  = 150
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes markup tags, leaving the plain text.
func StripHTML(content string) string {
	return tagPattern.ReplaceAllString(content, "")
}

// Excerpt returns the first 150 characters of the stripped content, with a
// trailing ellipsis when the source text is longer than that. Truncation
// counts runes, not bytes, so multibyte text is never cut mid-character.
func Excerpt(content string) string {
	plain := StripHTML(content)
	runes := []rune(plain)
	if len(runes) <= excerptLength {
		return plain
	}
	return string(runes[:excerptLength]) + "..."
}

// ReadingTime estimates minutes to read: ceil(word count / 200).
func ReadingTime(content string) int {
	words := len(strings.Fields(strings.TrimSpace(content)))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
