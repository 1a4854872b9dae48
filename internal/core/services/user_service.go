package services

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/inkwell-labs/blog_backend/internal/utils"
)

// userService implements UserSvcFacade: profile reads and self-service
// writes.
type userService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new instance of userService.
func NewUserService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{cfg: cfg, userRepo: userRepo}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// UpdateProfile updates the caller's own profile fields.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one.
// A successful change revokes the active session.
func (s *userService) ChangePassword(ctx context.Context, userID string, currentPassword string, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.AuthProvider != domain.ProviderLocal {
		return apperrors.NewValidationError("account uses an external identity provider")
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}

	passwordHash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.RefreshTokenHash = ""
	user.RefreshTokenExpiry = nil
	user.UpdatedAt = time.Now()
	return s.userRepo.UpdateUser(ctx, *user)
}
