package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	"github.com/inkwell-labs/blog_backend/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT access
// tokens and stores the caller's identity in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		storeIdentity(c, userID, domain.Role(claims.Role))
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a valid Bearer
// token is present but lets anonymous requests through untouched. Routes
// behind it serve both audiences; a malformed token is treated as anonymous.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			if claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret); err == nil && claims.Subject != "" {
				storeIdentity(c, claims.Subject, domain.Role(claims.Role))
			}
		}
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// caller holds one of the given roles. It must run after AuthMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := GetViewerFromContext(c)
		if viewer == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		for _, role := range roles {
			if viewer.Role == role {
				c.Next()
				return
			}
		}

		GetLoggerFromCtx(c.Request.Context()).Warn("Insufficient role",
			slog.String("user_id", viewer.UserID), slog.String("role", string(viewer.Role)))
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

func storeIdentity(c *gin.Context, userID string, role domain.Role) {
	if !role.IsValid() {
		role = domain.RoleUser
	}

	c.Set(string(userIDKey), userID)
	c.Set(string(userRoleKey), role)

	// Mirror into the standard context and enrich the request logger so
	// downstream log lines carry the user id.
	logger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("user_id", userID))
	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, loggerCtxKey, logger)
	c.Request = c.Request.WithContext(ctx)
}
