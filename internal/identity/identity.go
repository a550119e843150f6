// Package identity reads the trusted identity headers injected by the
// gateway. Services behind the gateway perform no token verification of
// their own; these headers are ground truth inside the trust boundary.
package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"

	contextUserID   = "user_id"
	contextUsername = "username"
)

// Middleware rejects requests that arrived without identity headers (i.e.
// did not come through the gateway) and stashes the identity in the gin
// context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing identity"})
			return
		}
		c.Set(contextUserID, userID)
		c.Set(contextUsername, c.GetHeader(HeaderUsername))
		c.Next()
	}
}

// UserID returns the authenticated user id for the request.
func UserID(c *gin.Context) string {
	return c.GetString(contextUserID)
}

// Username returns the authenticated username for the request.
func Username(c *gin.Context) string {
	return c.GetString(contextUsername)
}
