package services

import (
	"context"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// CommentSvcFacade defines comment management. Creating and deleting keep
// the owning post's comment count in step.
type CommentSvcFacade interface {
	CreateComment(ctx context.Context, blogID string, userID string, content string, parentID *string) (*domain.CommentWithAuthor, error)
	// ListCommentsByBlog returns the post's comments as a nested tree,
	// top-level comments newest first.
	ListCommentsByBlog(ctx context.Context, blogID string) ([]*domain.CommentNode, error)
	UpdateComment(ctx context.Context, commentID string, content string, viewer Viewer) (*domain.Comment, error)
	// DeleteComment removes the comment and its whole reply subtree.
	DeleteComment(ctx context.Context, commentID string, viewer Viewer) error
}
