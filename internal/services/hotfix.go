package services

import (
	"errors"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// HotfixService manages hotfixes. Any member may file one; updates and
// deletion are qa/manager only. Being assigned does not grant update rights.
type HotfixService struct {
	db   *gorm.DB
	perm *PermissionService
}

func NewHotfixService(db *gorm.DB) *HotfixService {
	return &HotfixService{db: db, perm: NewPermissionService(db)}
}

type CreateHotfixRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AssignedTo  *uint  `json:"assigned_to"`
}

type UpdateHotfixRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=open in_progress deployed"`
	AssignedTo  *uint   `json:"assigned_to"`
}

func (s *HotfixService) getHotfix(hotfixID uint) (*models.Hotfix, error) {
	var hotfix models.Hotfix
	if err := s.db.First(&hotfix, hotfixID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeHotfixNotFound, "hotfix not found")
		}
		return nil, err
	}
	return &hotfix, nil
}

// Create files a hotfix against a release. Member only.
func (s *HotfixService) Create(releaseID, userID uint, req *CreateHotfixRequest) (*models.Hotfix, error) {
	var release models.Release
	if err := s.db.First(&release, releaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeReleaseNotFound, "release not found")
		}
		return nil, err
	}
	if _, err := s.perm.Require(release.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	hotfix := models.Hotfix{
		WorkspaceID: release.WorkspaceID,
		ReleaseID:   releaseID,
		Title:       req.Title,
		Description: req.Description,
		Status:      "open",
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&hotfix).Error; err != nil {
		return nil, err
	}
	return &hotfix, nil
}

// ListForRelease returns a release's hotfixes. Member only.
func (s *HotfixService) ListForRelease(releaseID, userID uint) ([]models.Hotfix, error) {
	var release models.Release
	if err := s.db.First(&release, releaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeReleaseNotFound, "release not found")
		}
		return nil, err
	}
	if _, err := s.perm.Require(release.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var hotfixes []models.Hotfix
	err := s.db.Where("release_id = ?", releaseID).
		Preload("Assignee").
		Order("created_at DESC").
		Find(&hotfixes).Error
	if err != nil {
		return nil, err
	}
	return hotfixes, nil
}

// GetByID returns a hotfix. The caller must be a member of its workspace.
func (s *HotfixService) GetByID(hotfixID, userID uint) (*models.Hotfix, error) {
	hotfix, err := s.getHotfix(hotfixID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(hotfix.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}
	return hotfix, nil
}

// Update applies a partial update. QA or manager only.
func (s *HotfixService) Update(hotfixID, userID uint, req *UpdateHotfixRequest) (*models.Hotfix, error) {
	hotfix, err := s.getHotfix(hotfixID)
	if err != nil {
		return nil, err
	}

	member, err := s.perm.GetMembership(hotfix.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if !CanPerform(ActionHotfixUpdate, member.Role) {
		return nil, response.NewForbidden(response.CodeUnauthorizedAction, "only qa or managers may update hotfixes")
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = req.AssignedTo
	}

	if len(updates) > 0 {
		if err := s.db.Model(hotfix).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return hotfix, nil
}

// Delete removes a hotfix. QA or manager only.
func (s *HotfixService) Delete(hotfixID, userID uint) error {
	hotfix, err := s.getHotfix(hotfixID)
	if err != nil {
		return err
	}

	member, err := s.perm.GetMembership(hotfix.WorkspaceID, userID)
	if err != nil {
		return err
	}
	if !CanPerform(ActionHotfixDelete, member.Role) {
		return response.NewForbidden(response.CodeUnauthorizedAction, "only qa or managers may delete hotfixes")
	}

	return s.db.Delete(hotfix).Error
}
