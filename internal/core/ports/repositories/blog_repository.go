package repositories

import (
	"context"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// BlogReader defines read operations for blog data.
type BlogReader interface {
	// FindBlogByID retrieves a blog by ID.
	FindBlogByID(ctx context.Context, blogID string) (*domain.Blog, error)

	// FindBlogBySlug retrieves a blog by slug.
	FindBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error)

	// FindBlogWithRelations retrieves a blog joined with its author,
	// category and tags.
	FindBlogWithRelations(ctx context.Context, blogID string) (*domain.BlogWithRelations, error)

	// FindBlogWithRelationsBySlug is FindBlogWithRelations keyed by slug.
	FindBlogWithRelationsBySlug(ctx context.Context, slug string) (*domain.BlogWithRelations, error)

	// ListBlogs returns a page of blogs matching the filters plus the total
	// match count.
	ListBlogs(ctx context.Context, filters []domain.Filter, sort domain.Sort, page domain.Pagination) ([]domain.Blog, int64, error)

	// SlugExists reports whether a slug is taken by a blog other than
	// excludeID (pass "" on create).
	SlugExists(ctx context.Context, slug string, excludeID string) (bool, error)
}

// BlogWriter defines write operations for blog data.
type BlogWriter interface {
	// SaveBlog persists a new blog and its tag links.
	SaveBlog(ctx context.Context, blog domain.Blog) error

	// UpdateBlog updates an existing blog and replaces its tag links.
	UpdateBlog(ctx context.Context, blog domain.Blog) error

	// DeleteBlog removes a blog and cascades to its comments and likes.
	DeleteBlog(ctx context.Context, blogID string) error
}

// BlogCounterWriter maintains the view counter. The like and comment
// counters move with the like and comment repositories, which pair the
// counter change with the row mutation in one unit of work.
type BlogCounterWriter interface {
	// IncrementViewCount adds one view, applied atomically at the
	// storage layer.
	IncrementViewCount(ctx context.Context, blogID string) error
}

// BlogRepositoryFacade combines all blog-related repository interfaces.
type BlogRepositoryFacade interface {
	BlogReader
	BlogWriter
	BlogCounterWriter
}
