package services

import (
	"context"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	"github.com/inkwell-labs/blog_backend/internal/dto"
)

// BlogReaderSvc defines read operations for posts.
type BlogReaderSvc interface {
	// ListBlogs retrieves a filtered, paginated page of posts plus the total
	// match count. An empty status filter from an anonymous caller is forced
	// to published.
	ListBlogs(ctx context.Context, params dto.ListBlogsParams, viewer *Viewer) ([]domain.Blog, domain.Pagination, int64, error)

	// ListMyBlogs retrieves the caller's own posts regardless of status.
	ListMyBlogs(ctx context.Context, authorID string, params dto.ListBlogsParams) ([]domain.Blog, domain.Pagination, int64, error)

	// GetBlogBySlug retrieves a post with its relations. Reading a published
	// post bumps its view count; drafts are visible to their author and
	// moderators only.
	GetBlogBySlug(ctx context.Context, slug string, viewer *Viewer) (*domain.BlogWithRelations, error)
}

// BlogWriterSvc defines write operations for posts.
type BlogWriterSvc interface {
	CreateBlog(ctx context.Context, authorID string, req dto.CreateBlogRequest) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, blogID string, req dto.UpdateBlogRequest, viewer Viewer) (*domain.Blog, error)
	ChangeStatus(ctx context.Context, blogID string, status domain.BlogStatus, viewer Viewer) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, blogID string, viewer Viewer) error
}

// BlogLikeSvc defines the like toggle.
type BlogLikeSvc interface {
	// ToggleLike likes the post when no like exists and unlikes it otherwise.
	// It reports the resulting state and the post's like count.
	ToggleLike(ctx context.Context, blogID string, userID string) (bool, int64, error)
}

// BlogSvcFacade combines all post-related service interfaces.
type BlogSvcFacade interface {
	BlogReaderSvc
	BlogWriterSvc
	BlogLikeSvc
}

// Viewer identifies the authenticated caller for authorization decisions.
type Viewer struct {
	UserID string
	Role   domain.Role
}

// CanModerate reports whether the viewer may act on other users' content.
func (v Viewer) CanModerate() bool {
	return v.Role == domain.RoleAdmin
}
