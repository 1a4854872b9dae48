package domain

import "strings"

// Category groups blogs. Name and slug are globally unique.
type Category struct {
	CategoryID  string
	Name        string
	Slug        string
	Description string
	Color       string
	Timestamps
}

// Tag labels blogs, many-to-many. Name and slug are globally unique.
type Tag struct {
	TagID string
	Name  string
	Slug  string
	Timestamps
}

// NormalizeName is the canonical form used for find-or-create lookups:
// lowercased and trimmed so "Go " and "go" resolve to the same row.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
