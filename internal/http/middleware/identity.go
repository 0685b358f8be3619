package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the chat-platform user id forwarded by the adapter.
// It is trusted as-is; there is no authentication beyond it.
const HeaderUserID = "X-User-ID"

// ctxKeyUserID is the Gin context key read by handlers, the logger, and the
// rate limiter.
const ctxKeyUserID = "userID"

// maxUserIDLen caps accepted user ids; longer values are ignored.
const maxUserIDLen = 64

// Identity copies a trimmed X-User-ID header into the Gin context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := strings.TrimSpace(c.GetHeader(HeaderUserID)); uid != "" && len(uid) <= maxUserIDLen {
			c.Set(ctxKeyUserID, uid)
		}
		c.Next()
	}
}

// UserID returns the identity stored by Identity, or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
