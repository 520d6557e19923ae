package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type InviteHandler struct {
	inviteService *services.InviteService
}

func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// Create sends an invite for the workspace in scope. Manager only.
func (h *InviteHandler) Create(c *gin.Context) {
	var req services.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invite, err := h.inviteService.Create(middleware.GetWorkspaceID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, invite)
}

// ListForWorkspace returns the invites sent for the workspace in scope.
func (h *InviteHandler) ListForWorkspace(c *gin.Context) {
	invites, err := h.inviteService.ListForWorkspace(middleware.GetWorkspaceID(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, invites)
}

// ListMine returns the caller's own invites across all workspaces.
func (h *InviteHandler) ListMine(c *gin.Context) {
	invites, err := h.inviteService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, invites)
}

type respondInviteRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// Respond accepts or declines a pending invite. Invitee only, exactly once.
func (h *InviteHandler) Respond(c *gin.Context) {
	inviteID, ok := parseID(c, "inviteID")
	if !ok {
		return
	}

	var req respondInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invite, err := h.inviteService.Respond(inviteID, middleware.GetUserID(c), *req.Accept)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, invite)
}

// Delete removes an invite. Manager of the invite's workspace only.
func (h *InviteHandler) Delete(c *gin.Context) {
	inviteID, ok := parseID(c, "inviteID")
	if !ok {
		return
	}

	if err := h.inviteService.Delete(inviteID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "invite deleted"})
}
