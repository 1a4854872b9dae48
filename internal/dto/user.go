package dto

import (
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// UserResponse defines the public shape of a user.
type UserResponse struct {
	UserID          string     `json:"userID"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName,omitempty"`
	LastName        string     `json:"lastName,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	Avatar          string     `json:"avatar,omitempty"`
	Role            string     `json:"role"`
	IsEmailVerified bool       `json:"isEmailVerified"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:          user.UserID,
		Username:        user.Username,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Bio:             user.Bio,
		Avatar:          user.Avatar,
		Role:            string(user.Role),
		IsEmailVerified: user.IsEmailVerified,
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
	}
}

// PublicAuthorResponse is the trimmed author shape embedded in blog payloads.
type PublicAuthorResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// ToPublicAuthorResponse converts a domain.User to its embedded author shape.
func ToPublicAuthorResponse(user *domain.User) PublicAuthorResponse {
	return PublicAuthorResponse{
		UserID:   user.UserID,
		Username: user.Username,
		FullName: user.FullName(),
		Avatar:   user.Avatar,
	}
}

// UpdateProfileRequest defines the data allowed for updating a profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,max=50"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	Avatar    *string `json:"avatar" binding:"omitempty,url"`
}
