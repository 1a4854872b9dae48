package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/inkwell-labs/blog_backend/internal/core/domain"
	portssvc "github.com/inkwell-labs/blog_backend/internal/core/ports/services"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the authenticated user's role.
const userRoleKey = contextKey("userRole")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetViewerFromContext assembles the caller's identity for authorization
// decisions. It returns nil for anonymous requests.
func GetViewerFromContext(c *gin.Context) *portssvc.Viewer {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return nil
	}

	viewer := &portssvc.Viewer{UserID: userID, Role: domain.RoleUser}
	if roleVal, exists := c.Get(string(userRoleKey)); exists {
		if role, ok := roleVal.(domain.Role); ok {
			viewer.Role = role
		}
	}
	return viewer
}
