package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trolli/internal/auth"
)

// UserKey is the gin context key under which the authenticated username is
// stored.
const UserKey = "currentUser"

// AuthRequired validates the Bearer token and puts the username into the
// request context.
func AuthRequired(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		username, err := tokens.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserKey, username)
		c.Next()
	}
}

// CurrentUser returns the authenticated username set by AuthRequired.
func CurrentUser(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}
