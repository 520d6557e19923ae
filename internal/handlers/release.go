package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type ReleaseHandler struct {
	releaseService *services.ReleaseService
}

func NewReleaseHandler(releaseService *services.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{releaseService: releaseService}
}

func (h *ReleaseHandler) Create(c *gin.Context) {
	var req services.CreateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	release, err := h.releaseService.Create(middleware.GetWorkspaceID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, release)
}

func (h *ReleaseHandler) List(c *gin.Context) {
	releases, err := h.releaseService.List(middleware.GetWorkspaceID(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, releases)
}

func (h *ReleaseHandler) Get(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	release, err := h.releaseService.GetByID(releaseID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, release)
}

func (h *ReleaseHandler) Update(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	var req services.UpdateReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	release, err := h.releaseService.Update(releaseID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, release)
}

// Deploy marks the release as deployed. Manager and creator only.
func (h *ReleaseHandler) Deploy(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	release, err := h.releaseService.Deploy(releaseID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, release)
}

// UpdateQAStatus sets the QA verdict. QA or manager only.
func (h *ReleaseHandler) UpdateQAStatus(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	var req services.UpdateQAStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	release, err := h.releaseService.UpdateQAStatus(releaseID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, release)
}

func (h *ReleaseHandler) Delete(c *gin.Context) {
	releaseID, ok := parseID(c, "releaseID")
	if !ok {
		return
	}

	if err := h.releaseService.Delete(releaseID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "release deleted"})
}
