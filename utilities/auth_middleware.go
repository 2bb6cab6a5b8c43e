package utilities

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quizhive-backend/internal/model"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserKey   = "current_user"
	ContextUserIDKey = "user_id"
)

// UserLoader resolves a token's user id to a live user record.
type UserLoader func(id uint) (*model.User, error)

// AuthMiddleware ensures each request carries a valid bearer token that still
// maps to an existing user. Only registration, login and refresh under the
// configured base path stay open; the exemption is an exact match, never a
// pattern.
func AuthMiddleware(basePath string, loadUser UserLoader) gin.HandlerFunc {
	openRoutes := map[string]bool{
		basePath + "/auth/register": true,
		basePath + "/auth/login":    true,
		basePath + "/auth/refresh":  true,
	}
	return func(c *gin.Context) {
		if openRoutes[c.Request.URL.Path] {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortAuth(c, "MISSING_TOKEN", "missing or malformed authorization header")
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ValidateToken(tokenStr, false)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				abortAuth(c, "TOKEN_EXPIRED", "token has expired")
			} else {
				abortAuth(c, "INVALID_TOKEN", "invalid or malformed token")
			}
			return
		}

		user, err := loadUser(claims.UserID)
		if err != nil || user == nil {
			abortAuth(c, "USER_NOT_FOUND", "user for this token no longer exists")
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)

		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}

func abortAuth(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
		"error":   code,
	})
}
