package middleware

import (
	"net/http"
	"strings"

	"busfleet/utils"

	"github.com/gin-gonic/gin"
)

const UserIDHeader = "X-User-ID"

// CallerIdentity takes the caller id set by the upstream gateway and stores it
// in the context as "userID".
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Missing caller identity", UserIDHeader+" header is required")
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}
