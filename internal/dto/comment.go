package dto

import (
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// CreateCommentRequest defines the data needed to create a comment. A
// non-nil parent makes it a reply to another comment on the same post.
type CreateCommentRequest struct {
	Content  string  `json:"content" binding:"required,min=1,max=2000"`
	ParentID *string `json:"parentID" binding:"omitempty,uuid"`
}

// UpdateCommentRequest defines the data allowed for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentResponse defines the data returned for a comment, replies nested.
type CommentResponse struct {
	CommentID      string            `json:"commentID"`
	Content        string            `json:"content"`
	BlogID         string            `json:"blogID"`
	UserID         string            `json:"userID"`
	ParentID       *string           `json:"parentID,omitempty"`
	AuthorUsername string            `json:"authorUsername,omitempty"`
	AuthorAvatar   string            `json:"authorAvatar,omitempty"`
	IsEdited       bool              `json:"isEdited"`
	Replies        []CommentResponse `json:"replies,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ToCommentResponse converts a flat comment to its DTO.
func ToCommentResponse(comment *domain.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		CommentID:      comment.CommentID,
		Content:        comment.Content,
		BlogID:         comment.BlogID,
		UserID:         comment.UserID,
		ParentID:       comment.ParentID,
		AuthorUsername: comment.AuthorUsername,
		AuthorAvatar:   comment.AuthorAvatar,
		IsEdited:       comment.IsEdited,
		CreatedAt:      comment.CreatedAt,
		UpdatedAt:      comment.UpdatedAt,
	}
}

// ToCommentTreeResponse converts a nested comment tree to DTOs.
func ToCommentTreeResponse(nodes []*domain.CommentNode) []CommentResponse {
	res := make([]CommentResponse, len(nodes))
	for i, node := range nodes {
		res[i] = ToCommentResponse(&node.CommentWithAuthor)
		res[i].Replies = ToCommentTreeResponse(node.Replies)
	}
	return res
}
