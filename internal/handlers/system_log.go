package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type SystemLogHandler struct {
	systemLogService *services.SystemLogService
}

func NewSystemLogHandler(systemLogService *services.SystemLogService) *SystemLogHandler {
	return &SystemLogHandler{systemLogService: systemLogService}
}

// List returns a page of audit records, filtered by level, module or user.
func (h *SystemLogHandler) List(c *gin.Context) {
	q := services.LogQuery{
		Level:  c.Query("level"),
		Module: c.Query("module"),
	}

	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid user_id")
			return
		}
		uid := uint(id)
		q.UserID = &uid
	}

	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	logs, total, err := h.systemLogService.List(q)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"items":     logs,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}
