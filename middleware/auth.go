package middleware

import (
	"net/http"
	"slices"
	"strings"

	"refund-backend/auth"
	"refund-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKeyClaims = "auth_claims"

// TokenParser verifies bearer tokens
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// CurrentUser is the authenticated caller of a request
type CurrentUser struct {
	ID   uuid.UUID
	Role models.Role
}

// EnsureAuthenticated rejects requests without a valid bearer token
func EnsureAuthenticated(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "JWT token not found")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid JWT token")
			return
		}

		SetCurrentUser(c, claims)
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
// It must run after EnsureAuthenticated.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}
		if !slices.Contains(roles, user.Role) {
			abort(c, http.StatusForbidden, "FORBIDDEN", "Unauthorized")
			return
		}
		c.Next()
	}
}

// GetCurrentUser returns the caller stored by EnsureAuthenticated
func GetCurrentUser(c *gin.Context) (CurrentUser, bool) {
	value, exists := c.Get(contextKeyClaims)
	if !exists {
		return CurrentUser{}, false
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return CurrentUser{}, false
	}
	id, err := claims.UserID()
	if err != nil {
		return CurrentUser{}, false
	}
	return CurrentUser{ID: id, Role: claims.Role}, true
}

// SetCurrentUser stores the verified claims on the request
func SetCurrentUser(c *gin.Context, claims *auth.Claims) {
	c.Set(contextKeyClaims, claims)
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
