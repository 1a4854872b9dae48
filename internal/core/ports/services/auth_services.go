package services

import (
	"context"
	"time"

	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a
	// user's stored token hash. It returns the user if the token is current.
	ValidateAndParseRefreshToken(ctx context.Context, refreshTokenString string) (*domain.User, error)
}

// AuthSvcFacade defines the interface for account and session management.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error)
	Logout(ctx context.Context, userID string) error
	LoginWithGoogle(ctx context.Context, idToken string) (*domain.User, string, string, error)

	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// GoogleOAuthSvcFacade defines the interface for the Google OAuth flow.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString creates a secure random string used as a CSRF token for the OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
