package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/response"
)

const contextUserID = "user_id"

// UserID returns the authenticated user id set by Auth, or "" outside an
// authenticated route.
func UserID(c *gin.Context) string {
	return c.GetString(contextUserID)
}

// Auth parses the Bearer token, stores the subject user id on the context
// and touches the account's last_seen. The request layer trusts the id a
// verified token carries; services never re-authenticate.
func Auth(tokens *service.TokenService, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}
		userID, err := tokens.Parse(raw)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		c.Set(contextUserID, userID)
		users.TouchLastSeen(c.Request.Context(), userID)
		c.Next()
	}
}
