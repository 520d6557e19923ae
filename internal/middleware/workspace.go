package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/pkg/response"
)

const ContextWorkspaceID = "workspace_id"

// WorkspaceScoped parses the :workspaceID route param and stores it on the
// context. Malformed ids are rejected before any handler runs.
func WorkspaceScoped() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param("workspaceID")
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			response.BadRequest(c, "invalid workspace id")
			c.Abort()
			return
		}

		c.Set(ContextWorkspaceID, uint(id))
		c.Next()
	}
}

// GetWorkspaceID returns the parsed workspace id from the context.
func GetWorkspaceID(c *gin.Context) uint {
	if v, ok := c.Get(ContextWorkspaceID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
