package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/middleware"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/pkg/response"
)

type DesignAssetHandler struct {
	assetService *services.DesignAssetService
}

func NewDesignAssetHandler(assetService *services.DesignAssetService) *DesignAssetHandler {
	return &DesignAssetHandler{assetService: assetService}
}

func (h *DesignAssetHandler) Create(c *gin.Context) {
	var req services.CreateDesignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	asset, err := h.assetService.Create(middleware.GetWorkspaceID(c), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, asset)
}

func (h *DesignAssetHandler) List(c *gin.Context) {
	assets, err := h.assetService.List(middleware.GetWorkspaceID(c), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, assets)
}

func (h *DesignAssetHandler) Get(c *gin.Context) {
	assetID, ok := parseID(c, "assetID")
	if !ok {
		return
	}

	asset, err := h.assetService.GetByID(assetID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, asset)
}

func (h *DesignAssetHandler) Update(c *gin.Context) {
	assetID, ok := parseID(c, "assetID")
	if !ok {
		return
	}

	var req services.UpdateDesignAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	asset, err := h.assetService.Update(assetID, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, asset)
}

func (h *DesignAssetHandler) Delete(c *gin.Context) {
	assetID, ok := parseID(c, "assetID")
	if !ok {
		return
	}

	if err := h.assetService.Delete(assetID, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "design asset deleted"})
}
