package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	guestHeader = "X-Guest-Id"
	maxGuestLen = 128
)

// Identity scopes every request to the browser-local guest id sent in
// X-Guest-Id. There is no authentication; the id only partitions drafts.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		guestID := strings.TrimSpace(c.GetHeader(guestHeader))
		if guestID == "" || len(guestID) > maxGuestLen {
			respond.Error(c, http.StatusUnauthorized, "missing_identity", "X-Guest-Id header is required", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Next()
	}
}

// UserIDFromContext fetches the owner id set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
