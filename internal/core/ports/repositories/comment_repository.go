package repositories

import (
	"context"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// CommentRepositoryFacade exposes flat comment storage. Reply trees are
// built by the service from the flat rows.
type CommentRepositoryFacade interface {
	// SaveComment persists a new comment and bumps the owning blog's
	// comment counter in the same unit of work.
	SaveComment(ctx context.Context, comment domain.Comment) error

	// FindCommentByID retrieves a comment by ID.
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// ListCommentsByBlog returns all comments for a blog with author display
	// fields, newest first.
	ListCommentsByBlog(ctx context.Context, blogID string) ([]domain.CommentWithAuthor, error)

	// UpdateComment updates an existing comment.
	UpdateComment(ctx context.Context, comment domain.Comment) error

	// DeleteCommentTree removes a comment and its entire reply subtree and
	// drops the blog's comment counter by the same amount, returning the
	// number of comments removed.
	DeleteCommentTree(ctx context.Context, commentID string) (int64, error)
}

// LikeRepositoryFacade exposes like storage. The (blog, user) pair is
// guarded by a unique constraint; concurrent duplicate inserts surface as
// apperrors.ErrDuplicate.
type LikeRepositoryFacade interface {
	// SaveLike persists a like and bumps the blog's like counter in the
	// same unit of work. Returns apperrors.ErrDuplicate when the
	// (blog, user) pair already exists.
	SaveLike(ctx context.Context, like domain.Like) error

	// FindLike retrieves the like for a (blog, user) pair.
	FindLike(ctx context.Context, blogID string, userID string) (*domain.Like, error)

	// DeleteLike removes the like for a (blog, user) pair and drops the
	// blog's like counter when a row was removed, reporting whether one
	// was.
	DeleteLike(ctx context.Context, blogID string, userID string) (bool, error)
}
