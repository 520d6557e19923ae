package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type PrdHandler struct {
	prdService *services.PrdService
}

func NewPrdHandler(prdService *services.PrdService) *PrdHandler {
	return &PrdHandler{prdService: prdService}
}

func (h *PrdHandler) Create(c *gin.Context) {
	var req services.CreatePrdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	prd, err := h.prdService.Create(middleware.GetWorkspaceID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, prd)
}

func (h *PrdHandler) List(c *gin.Context) {
	prds, err := h.prdService.List(middleware.GetWorkspaceID(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, prds)
}

func (h *PrdHandler) Get(c *gin.Context) {
	prdID, ok := parseID(c, "prdID")
	if !ok {
		return
	}

	prd, err := h.prdService.GetByID(prdID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, prd)
}

func (h *PrdHandler) Update(c *gin.Context) {
	prdID, ok := parseID(c, "prdID")
	if !ok {
		return
	}

	var req services.UpdatePrdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	prd, err := h.prdService.Update(prdID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, prd)
}

func (h *PrdHandler) Delete(c *gin.Context) {
	prdID, ok := parseID(c, "prdID")
	if !ok {
		return
	}

	if err := h.prdService.Delete(prdID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "prd deleted"})
}
