package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type HotfixHandler struct {
	hotfixService *services.HotfixService
}

func NewHotfixHandler(hotfixService *services.HotfixService) *HotfixHandler {
	return &HotfixHandler{hotfixService: hotfixService}
}

// Create files a hotfix against a release.
func (h *HotfixHandler) Create(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	var req services.CreateHotfixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hotfix, err := h.hotfixService.Create(releaseID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, hotfix)
}

func (h *HotfixHandler) ListForRelease(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	hotfixes, err := h.hotfixService.ListForRelease(releaseID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, hotfixes)
}

func (h *HotfixHandler) Get(c *gin.Context) {
	hotfixID, ok := parseID(c, "hotfixID")
	if !ok {
		return
	}

	hotfix, err := h.hotfixService.GetByID(hotfixID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, hotfix)
}

func (h *HotfixHandler) Update(c *gin.Context) {
	hotfixID, ok := parseID(c, "hotfixID")
	if !ok {
		return
	}

	var req services.UpdateHotfixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hotfix, err := h.hotfixService.Update(hotfixID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, hotfix)
}

func (h *HotfixHandler) Delete(c *gin.Context) {
	hotfixID, ok := parseID(c, "hotfixID")
	if !ok {
		return
	}

	if err := h.hotfixService.Delete(hotfixID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "hotfix deleted"})
}
