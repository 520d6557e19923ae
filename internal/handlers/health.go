package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teamflow/backend/pkg/response"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports liveness and database reachability.
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	response.Success(c, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}
