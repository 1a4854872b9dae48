// Package slugutil derives URL-safe unique identifiers from display names.
package slugutil

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// diacritics maps common accented letters to their ASCII base so titles
// like "Café" slugify to "cafe".
var diacritics = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n', 'ý': 'y', 'ß': 's',
}

// Slugify lowercases the text, strips diacritics and punctuation, collapses
// whitespace runs to single hyphens and trims leading/trailing hyphens.
// It is idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if mapped, ok := diacritics[r]; ok {
			r = mapped
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		case unicode.IsSpace(r), r == '-', r == '_':
			pendingHyphen = true
		default:
			// punctuation and symbols are dropped without separating
		}
	}
	return b.String()
}

// ExistsFunc reports whether a candidate slug is already taken for the
// entity kind in question. Update paths exclude the entity's own ID.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// UniqueSlug probes exists with base, then base-1, base-2, ... until a free
// slug is found. Deterministic given the same set of taken slugs.
func UniqueSlug(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	if base == "" {
		base = "untitled"
	}
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
