package domain

import "time"

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
	StatusArchived  BlogStatus = "archived"
)

// IsValid reports whether the status is one of the known values.
func (s BlogStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// CanTransitionTo enforces the status state machine:
// draft -> published, published -> draft, published -> archived.
func (s BlogStatus) CanTransitionTo(next BlogStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusPublished
	case StatusPublished:
		return next == StatusDraft || next == StatusArchived
	}
	return false
}

// Blog is a post. Counters are denormalized aggregates maintained by the
// store with atomic increments; they are never set directly by callers.
type Blog struct {
	BlogID          string
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	FeaturedImage   string
	AuthorID        string
	CategoryID      *string
	TagIDs          []string
	Status          BlogStatus
	ViewCount       int64
	LikeCount       int64
	CommentCount    int64
	ReadingTime     int
	IsFeatured      bool
	PublishedAt     *time.Time
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	Timestamps
}

// MarkPublished latches PublishedAt the first time the blog enters the
// published status. Later transitions never clear or overwrite it.
func (b *Blog) MarkPublished(now time.Time) {
	b.Status = StatusPublished
	if b.PublishedAt == nil {
		t := now
		b.PublishedAt = &t
	}
}

// BlogWithRelations is a blog joined with its author, category and tags.
type BlogWithRelations struct {
	Blog
	Author   User
	Category *Category
	Tags     []Tag
}
