package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trolli/internal/model"
)

// AdminOnly gates member-management routes. A non-admin caller is silently
// redirected to the boards view instead of receiving an error, matching the
// navigation behavior of the client.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := CurrentUser(c)
		if !ok || username != model.AdminName {
			c.Redirect(http.StatusFound, "/api/views/boards")
			c.Abort()
			return
		}
		c.Next()
	}
}
