package services

import (
	"errors"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// PrdService manages requirement documents. All operations are member-level.
type PrdService struct {
	db   *gorm.DB
	perm *PermissionService
}

func NewPrdService(db *gorm.DB) *PrdService {
	return &PrdService{db: db, perm: NewPermissionService(db)}
}

type CreatePrdRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type UpdatePrdRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

func (s *PrdService) getPrd(prdID uint) (*models.Prd, error) {
	var prd models.Prd
	if err := s.db.First(&prd, prdID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodePrdNotFound, "prd not found")
		}
		return nil, err
	}
	return &prd, nil
}

func (s *PrdService) Create(workspaceID, userID uint, req *CreatePrdRequest) (*models.Prd, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	prd := models.Prd{
		WorkspaceID: workspaceID,
		Title:       req.Title,
		Content:     req.Content,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&prd).Error; err != nil {
		return nil, err
	}
	return &prd, nil
}

func (s *PrdService) List(workspaceID, userID uint) ([]models.Prd, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var prds []models.Prd
	if err := s.db.Where("workspace_id = ?", workspaceID).Order("created_at DESC").Find(&prds).Error; err != nil {
		return nil, err
	}
	return prds, nil
}

func (s *PrdService) GetByID(prdID, userID uint) (*models.Prd, error) {
	prd, err := s.getPrd(prdID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(prd.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}
	return prd, nil
}

func (s *PrdService) Update(prdID, userID uint, req *UpdatePrdRequest) (*models.Prd, error) {
	prd, err := s.getPrd(prdID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(prd.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}

	if len(updates) > 0 {
		if err := s.db.Model(prd).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return prd, nil
}

func (s *PrdService) Delete(prdID, userID uint) error {
	prd, err := s.getPrd(prdID)
	if err != nil {
		return err
	}
	if _, err := s.perm.Require(prd.WorkspaceID, userID, PermissionMember); err != nil {
		return err
	}

	return s.db.Delete(prd).Error
}
