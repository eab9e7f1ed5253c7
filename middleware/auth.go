package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-dashboard/services"
)

// RequireSession rejects requests made before login.
func RequireSession(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Current() == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly gates the admin console routes. This mirrors the view-state
// rule only; the backend re-authorizes every privileged call regardless.
func AdminOnly(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
