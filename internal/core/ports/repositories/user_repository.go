package repositories

import (
	"context"
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByVerificationToken retrieves a user by their pending
	// email-verification token.
	FindUserByVerificationToken(ctx context.Context, token string) (*domain.User, error)

	// FindUserByResetToken retrieves a user by their password-reset token.
	FindUserByResetToken(ctx context.Context, token string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// username or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken stores the hash of the single active refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error

	// ClearRefreshToken invalidates the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
