package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
)

// commentService implements CommentSvcFacade. The repository pairs every
// create and delete with the owning post's comment counter.
type commentService struct {
	commentRepo portsrepo.CommentRepositoryFacade
	blogRepo    portsrepo.BlogRepositoryFacade
	userRepo    portsrepo.UserReader
}

// NewCommentService creates a new instance of commentService.
func NewCommentService(commentRepo portsrepo.CommentRepositoryFacade, blogRepo portsrepo.BlogRepositoryFacade, userRepo portsrepo.UserReader) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		userRepo:    userRepo,
	}
}

// CreateComment adds a comment to a published post. A reply's parent must
// be a comment on the same post.
func (s *commentService) CreateComment(ctx context.Context, blogID string, userID string, content string, parentID *string) (*domain.CommentWithAuthor, error) {
	blog, err := s.blogRepo.FindBlogByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Status != domain.StatusPublished {
		return nil, apperrors.ErrNotFound
	}

	if parentID != nil {
		parent, err := s.commentRepo.FindCommentByID(ctx, *parentID)
		if err != nil {
			return nil, apperrors.NewValidationError("parent comment does not exist")
		}
		if parent.BlogID != blogID {
			return nil, apperrors.NewValidationError("parent comment belongs to a different blog")
		}
	}

	now := time.Now()
	comment := domain.Comment{
		CommentID:  uuid.NewString(),
		Content:    content,
		BlogID:     blogID,
		UserID:     userID,
		ParentID:   parentID,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		return nil, err
	}

	result := domain.CommentWithAuthor{Comment: comment}
	if author, err := s.userRepo.FindUserByID(ctx, userID); err == nil {
		result.AuthorUsername = author.Username
		result.AuthorAvatar = author.Avatar
	}
	return &result, nil
}

// ListCommentsByBlog returns the post's comments as a nested tree,
// top-level comments newest first.
func (s *commentService) ListCommentsByBlog(ctx context.Context, blogID string) ([]*domain.CommentNode, error) {
	if _, err := s.blogRepo.FindBlogByID(ctx, blogID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListCommentsByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return domain.BuildCommentTree(comments), nil
}

// UpdateComment edits the comment body. Author only; admins may delete a
// comment but not rewrite it.
func (s *commentService) UpdateComment(ctx context.Context, commentID string, content string, viewer portssvc.Viewer) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != viewer.UserID {
		return nil, apperrors.ErrForbidden
	}

	comment.Content = content
	comment.IsEdited = true
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.UpdateComment(ctx, *comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes the comment and its whole reply subtree, available
// to the comment's author and moderators. The post's comment count drops
// by the number of rows removed.
func (s *commentService) DeleteComment(ctx context.Context, commentID string, viewer portssvc.Viewer) error {
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != viewer.UserID && !viewer.CanModerate() {
		return apperrors.ErrForbidden
	}

	if _, err := s.commentRepo.DeleteCommentTree(ctx, commentID); err != nil {
		return err
	}
	return nil
}
