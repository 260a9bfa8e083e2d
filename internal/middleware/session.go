package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware extracts the X-Session-ID header and sets it in
// context so handlers can use c.GetString("session_id"). Every cart and
// checkout route is session-scoped, so a missing header is rejected
// rather than defaulted.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "SESSION_REQUIRED",
					"message": "X-Session-ID header is required",
				},
			})
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}
