package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/pkg/response"
)

// parseID extracts a positive numeric route param. On failure it writes a 400
// envelope and returns false.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
