package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type MemberHandler struct {
	workspaceService *services.WorkspaceService
}

func NewMemberHandler(workspaceService *services.WorkspaceService) *MemberHandler {
	return &MemberHandler{workspaceService: workspaceService}
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.workspaceService.ListMembers(middleware.GetWorkspaceID(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

func (h *MemberHandler) Add(c *gin.Context) {
	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.workspaceService.AddMember(middleware.GetWorkspaceID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

func (h *MemberHandler) Update(c *gin.Context) {
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}

	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.workspaceService.UpdateMember(middleware.GetWorkspaceID(c), middleware.GetUserID(c), targetID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member)
}

func (h *MemberHandler) Remove(c *gin.Context) {
	targetID, ok := parseID(c, "userID")
	if !ok {
		return
	}

	if err := h.workspaceService.RemoveMember(middleware.GetWorkspaceID(c), middleware.GetUserID(c), targetID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed"})
}
