package auth

import (
	"github.com/gin-gonic/gin"

	"agriconnect/internal/model"
)

// UserID returns the authenticated subject set by Middleware, or "" on
// an unauthenticated request.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func Role(c *gin.Context) model.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(string); ok {
			return model.Role(r)
		}
	}
	return ""
}
