package services

import (
	"errors"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// DesignAssetService manages design asset links. All operations are
// member-level; the assets themselves live in external storage.
type DesignAssetService struct {
	db   *gorm.DB
	perm *PermissionService
}

func NewDesignAssetService(db *gorm.DB) *DesignAssetService {
	return &DesignAssetService{db: db, perm: NewPermissionService(db)}
}

type CreateDesignAssetRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
}

type UpdateDesignAssetRequest struct {
	Name        string  `json:"name"`
	URL         string  `json:"url" binding:"omitempty,url"`
	Description *string `json:"description"`
}

func (s *DesignAssetService) getAsset(assetID uint) (*models.DesignAsset, error) {
	var asset models.DesignAsset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeDesignAssetNotFound, "design asset not found")
		}
		return nil, err
	}
	return &asset, nil
}

func (s *DesignAssetService) Create(workspaceID, userID uint, req *CreateDesignAssetRequest) (*models.DesignAsset, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	asset := models.DesignAsset{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *DesignAssetService) List(workspaceID, userID uint) ([]models.DesignAsset, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var assets []models.DesignAsset
	if err := s.db.Where("workspace_id = ?", workspaceID).Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *DesignAssetService) GetByID(assetID, userID uint) (*models.DesignAsset, error) {
	asset, err := s.getAsset(assetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(asset.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *DesignAssetService) Update(assetID, userID uint, req *UpdateDesignAssetRequest) (*models.DesignAsset, error) {
	asset, err := s.getAsset(assetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(asset.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.URL != "" {
		updates["url"] = req.URL
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(asset).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return asset, nil
}

func (s *DesignAssetService) Delete(assetID, userID uint) error {
	asset, err := s.getAsset(assetID)
	if err != nil {
		return err
	}
	if _, err := s.perm.Require(asset.WorkspaceID, userID, PermissionMember); err != nil {
		return err
	}

	return s.db.Delete(asset).Error
}
