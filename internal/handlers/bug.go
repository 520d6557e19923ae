package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type BugHandler struct {
	bugService *services.BugService
}

func NewBugHandler(bugService *services.BugService) *BugHandler {
	return &BugHandler{bugService: bugService}
}

// Create reports a bug against a release.
func (h *BugHandler) Create(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	var req services.CreateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bug, err := h.bugService.Create(releaseID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, bug)
}

func (h *BugHandler) ListForRelease(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	bugs, err := h.bugService.ListForRelease(releaseID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bugs)
}

func (h *BugHandler) Get(c *gin.Context) {
	bugID, ok := parseID(c, "bugID")
	if !ok {
		return
	}

	bug, err := h.bugService.GetByID(bugID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bug)
}

func (h *BugHandler) Update(c *gin.Context) {
	bugID, ok := parseID(c, "bugID")
	if !ok {
		return
	}

	var req services.UpdateBugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	bug, err := h.bugService.Update(bugID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bug)
}

func (h *BugHandler) Delete(c *gin.Context) {
	bugID, ok := parseID(c, "bugID")
	if !ok {
		return
	}

	if err := h.bugService.Delete(bugID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "bug deleted"})
}
