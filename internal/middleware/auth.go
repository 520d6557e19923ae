package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/utils"
	"github.com/teamflow/backend/pkg/response"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// AuthRequired validates the bearer token and stores the caller's identity on
// the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, response.NewUnauthorized("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, response.NewUnauthorized("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, response.NewUnauthorized("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the context.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUsername returns the authenticated user's name from the context.
func GetUsername(c *gin.Context) string {
	if v, ok := c.Get(ContextUsername); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
