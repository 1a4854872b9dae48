package services

import (
	"context"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	"github.com/inkwell-labs/blog_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// UpdateProfile updates the caller's own profile fields.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)

	// ChangePassword verifies the current password before setting a new one.
	ChangePassword(ctx context.Context, userID string, currentPassword string, newPassword string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
