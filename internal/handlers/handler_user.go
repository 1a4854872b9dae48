package handlers

import (
	"net/http"

	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
	"github.com/inkwell-labs/blog_backend/internal/dto"
	"github.com/inkwell-labs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
}

// registerUserRoutes sets up the routes for user profiles.
func registerUserRoutes(public *gin.RouterGroup, private *gin.RouterGroup, us portssvc.UserSvcFacade) {
	h := &userHandler{userService: us}

	public.GET("/users/:username", h.GetPublicProfile)

	// Self-scoped routes live under /me so they never collide with the
	// /users/:username wildcard.
	private.GET("/me", h.GetMe)
	private.PUT("/me", h.UpdateMe)
	private.PUT("/me/password", h.ChangePassword)
}

// GetPublicProfile godoc
// @Summary Get public author profile
// @Description Returns the public fields of a user looked up by username.
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.PublicAuthorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{username} [get]
func (h *userHandler) GetPublicProfile(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPublicAuthorResponse(user))
}

// GetMe godoc
// @Summary Get own profile
// @Description Returns the authenticated user's full profile.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *userHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateMe godoc
// @Summary Update own profile
// @Description Applies partial updates to the authenticated user's profile. Omitted fields are left unchanged.
// @Tags users
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [put]
func (h *userHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ChangePassword godoc
// @Summary Change password
// @Description Replaces the password after verifying the current one. The active session is revoked.
// @Tags users
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/password [put]
func (h *userHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed"})
}
