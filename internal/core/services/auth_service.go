package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkwell-labs/blog_backend/internal/apperrors"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portsrepo "github.com/inkwell-labs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/inkwell-labs/blog_backend/internal/utils"
)

const resetTokenTTL = time.Hour

// authService implements AuthSvcFacade: registration, sessions and the
// email verification and password reset flows.
type authService struct {
	cfg       *config.Config
	userRepo  portsrepo.UserRepositoryFacade
	tokenSvc  portssvc.TokenSvcFacade
	googleSvc portssvc.GoogleOAuthSvcFacade
	mailer    portssvc.Mailer
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, tokenSvc portssvc.TokenSvcFacade, googleSvc portssvc.GoogleOAuthSvcFacade, mailer portssvc.Mailer) portssvc.AuthSvcFacade {
	return &authService{
		cfg:       cfg,
		userRepo:  userRepo,
		tokenSvc:  tokenSvc,
		googleSvc: googleSvc,
		mailer:    mailer,
	}
}

// Register creates a local account. The verification token is persisted
// before the email goes out, so a lost send can be retried via
// ResendVerification.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:                 uuid.NewString(),
		Username:               req.Username,
		Email:                  strings.ToLower(req.Email),
		PasswordHash:           passwordHash,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Role:                   domain.RoleUser,
		AuthProvider:           domain.ProviderLocal,
		EmailVerificationToken: &verificationToken,
		IsActive:               true,
		Timestamps:             domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.sendVerificationMail(user.Email, user.Username, verificationToken)

	return &user, nil
}

// Login authenticates local credentials and opens a session, returning the
// user with fresh access and refresh tokens.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, string, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", "", apperrors.ErrUnauthorized
		}
		return nil, "", "", fmt.Errorf("failed to look up user for login: %w", err)
	}

	if user.AuthProvider != domain.ProviderLocal {
		return nil, "", "", apperrors.NewAppError(401, "account uses an external identity provider", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, "", "", apperrors.ErrForbidden
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", "", apperrors.ErrUnauthorized
	}
	if s.cfg.RequireEmailVerification && !user.IsEmailVerified {
		return nil, "", "", apperrors.NewAppError(403, "email address not verified", apperrors.ErrForbidden)
	}

	return s.openSession(ctx, user)
}

// Refresh rotates the session: the presented refresh token is validated,
// then replaced, so a superseded token stops working immediately.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error) {
	user, err := s.tokenSvc.ValidateAndParseRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", err
	}
	return s.openSession(ctx, user)
}

// Logout drops the stored refresh token, ending the session everywhere.
func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// LoginWithGoogle validates a Google ID token and signs the user in,
// provisioning an account on first contact. Google accounts arrive with a
// verified email.
func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (*domain.User, string, string, error) {
	payload, err := s.googleSvc.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		return nil, "", "", apperrors.NewAppError(401, "invalid google token", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, "", "", apperrors.NewAppError(401, "google token is missing an email claim", apperrors.ErrUnauthorized)
	}
	email = strings.ToLower(email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", "", fmt.Errorf("failed to look up google user: %w", err)
		}
		user, err = s.provisionGoogleUser(ctx, email, payload.Claims)
		if err != nil {
			return nil, "", "", err
		}
	}

	if !user.IsActive {
		return nil, "", "", apperrors.ErrForbidden
	}

	return s.openSession(ctx, user)
}

func (s *authService) provisionGoogleUser(ctx context.Context, email string, claims map[string]any) (*domain.User, error) {
	givenName, _ := claims["given_name"].(string)
	familyName, _ := claims["family_name"].(string)
	picture, _ := claims["picture"].(string)

	now := time.Now()
	user := domain.User{
		UserID:          uuid.NewString(),
		Username:        s.usernameFromEmail(ctx, email),
		Email:           email,
		FirstName:       givenName,
		LastName:        familyName,
		Avatar:          picture,
		Role:            domain.RoleUser,
		AuthProvider:    domain.ProviderGoogle,
		IsEmailVerified: true,
		IsActive:        true,
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}
	return &user, nil
}

// usernameFromEmail derives a free username from the email local part,
// probing numeric suffixes on collision.
func (s *authService) usernameFromEmail(ctx context.Context, email string) string {
	base, _, _ := strings.Cut(email, "@")
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(base))
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 1; ; i++ {
		_, err := s.userRepo.FindUserByUsername(ctx, candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

// openSession stamps the login time and issues both tokens.
func (s *authService) openSession(ctx context.Context, user *domain.User) (*domain.User, string, string, error) {
	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, _, err := s.tokenSvc.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	now := time.Now()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, "", "", fmt.Errorf("failed to stamp login time: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

// VerifyEmail consumes a verification token. Tokens are single use; the
// stored token is cleared on success.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.userRepo.FindUserByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("invalid or expired verification token")
		}
		return fmt.Errorf("failed to look up verification token: %w", err)
	}

	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	user.UpdatedAt = time.Now()
	return s.userRepo.UpdateUser(ctx, *user)
}

// ResendVerification issues a fresh verification token. Unknown or already
// verified addresses respond identically to avoid leaking account existence.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user for verification resend: %w", err)
	}
	if user.IsEmailVerified {
		return nil
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	user.EmailVerificationToken = &token
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return err
	}

	s.sendVerificationMail(user.Email, user.Username, token)
	return nil
}

// ForgotPassword issues a one hour reset token. As with resends, unknown
// addresses are not distinguishable from known ones.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user for password reset: %w", err)
	}
	if user.AuthProvider != domain.ProviderLocal {
		return nil
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExpires = &expires
	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return err
	}

	if s.mailer != nil {
		go func(to, username, token string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.mailer.SendPasswordResetEmail(sendCtx, to, username, token); err != nil {
				slog.Error("failed to send password reset email", slog.String("error", err.Error()))
			}
		}(user.Email, user.Username, token)
	}
	return nil
}

// ResetPassword consumes a reset token, replaces the password and revokes
// the active session.
func (s *authService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	user, err := s.userRepo.FindUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("invalid or expired reset token")
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return apperrors.NewValidationError("invalid or expired reset token")
	}

	passwordHash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	user.RefreshTokenHash = ""
	user.RefreshTokenExpiry = nil
	user.UpdatedAt = time.Now()
	return s.userRepo.UpdateUser(ctx, *user)
}

// sendVerificationMail fires the verification email without blocking the
// caller; a failed send only logs, the token stays valid for resends.
func (s *authService) sendVerificationMail(to, username, token string) {
	if s.mailer == nil {
		return
	}
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mailer.SendVerificationEmail(sendCtx, to, username, token); err != nil {
			slog.Error("failed to send verification email", slog.String("error", err.Error()))
		}
	}()
}
