package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/inkwell-labs/blog_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// oauthStateCookie carries the CSRF state between the Google redirect and
// the callback.
const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService   portssvc.AuthSvcFacade
	googleService portssvc.GoogleOAuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade, gs portssvc.GoogleOAuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: as, googleService: gs}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Auth, services.GoogleOAuth)

	// Credential endpoints get their own, tighter limit than the global one.
	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", limitMiddleware, h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/google", limitMiddleware, h.GoogleLogin)
		auth.GET("/google/login", limitMiddleware, h.GoogleLoginRedirect)
		auth.GET("/google/callback", h.GoogleCallback)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.Logout)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", limitMiddleware, h.ResendVerification)
		auth.POST("/forgot-password", limitMiddleware, h.ForgotPassword)
		auth.POST("/reset-password", limitMiddleware, h.ResetPassword)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a new account and emails a verification link.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns access and refresh tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, accessToken, refreshToken, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	})
}

// GoogleLogin godoc
// @Summary Login with Google
// @Description Validates a Google ID token and signs the user in, creating an account on first contact.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, accessToken, refreshToken, err := h.authService.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	})
}

// GoogleLoginRedirect godoc
// @Summary Start Google login
// @Description Redirects the browser to Google's consent screen. The CSRF state is stored in a cookie and checked on the callback.
// @Tags auth
// @Produce json
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLoginRedirect(c *gin.Context) {
	ctx := c.Request.Context()

	state, err := h.googleService.GenerateStateString(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.GetGoogleLoginURL(ctx, state))
}

// GoogleCallback godoc
// @Summary Google login callback
// @Description Completes the redirect flow: checks the CSRF state, exchanges the authorization code for Google tokens and signs the user in, creating an account on first contact.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state from the redirect"
// @Param code query string true "Authorization code from Google"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	ctx := c.Request.Context()

	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "OAuth state mismatch"})
		return
	}
	// The state is single use.
	c.SetCookie(oauthStateCookie, "", -1, "/", "", c.Request.TLS != nil, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	oauth2Token, err := h.googleService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to exchange authorization code", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Google response is missing the ID token"})
		return
	}

	user, accessToken, refreshToken, err := h.authService.LoginWithGoogle(ctx, idTokenString)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	})
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Rotates the refresh token and returns a fresh token pair. The presented token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	_, accessToken, refreshToken, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the caller's refresh token, ending the session.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to log out", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// VerifyEmail godoc
// @Summary Verify email address
// @Description Consumes an emailed verification token. Tokens are single use.
// @Tags auth
// @Accept json
// @Produce json
// @Param verify body dto.VerifyEmailRequest true "Verification token"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email verified"})
}

// ResendVerification godoc
// @Summary Resend verification email
// @Description Issues a fresh verification token. Responds identically whether or not the address exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param resend body dto.ResendVerificationRequest true "Email address"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req dto.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "If the address exists, a verification email has been sent"})
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Emails a reset link valid for one hour. Responds identically whether or not the address exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param forgot body dto.ForgotPasswordRequest true "Email address"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "If the address exists, a reset email has been sent"})
}

// ResetPassword godoc
// @Summary Reset password
// @Description Consumes a reset token and replaces the password. The active session is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset"})
}
