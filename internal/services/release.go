package services

import (
	"errors"
	"time"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// ReleaseService manages releases. Creation, update, delete and deploy are
// manager operations; QA status is settable by qa or manager.
type ReleaseService struct {
	db   *gorm.DB
	perm *PermissionService
}

func NewReleaseService(db *gorm.DB) *ReleaseService {
	return &ReleaseService{db: db, perm: NewPermissionService(db)}
}

type CreateReleaseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateReleaseRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type UpdateQAStatusRequest struct {
	QAStatus string `json:"qa_status" binding:"required,oneof=pending passed failed"`
}

func (s *ReleaseService) getRelease(releaseID uint) (*models.Release, error) {
	var release models.Release
	if err := s.db.First(&release, releaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeReleaseNotFound, "release not found")
		}
		return nil, err
	}
	return &release, nil
}

// Create creates a planned release. Manager only.
func (s *ReleaseService) Create(workspaceID, userID uint, req *CreateReleaseRequest) (*models.Release, error) {
	if _, err := s.perm.RequireAction(workspaceID, userID, ActionReleaseCreate); err != nil {
		return nil, err
	}

	release := models.Release{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ReleaseStatusPlanned,
		QAStatus:    models.QAStatusPending,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&release).Error; err != nil {
		return nil, err
	}
	return &release, nil
}

// List returns a workspace's releases. Member only.
func (s *ReleaseService) List(workspaceID, userID uint) ([]models.Release, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var releases []models.Release
	if err := s.db.Where("workspace_id = ?", workspaceID).Order("created_at DESC").Find(&releases).Error; err != nil {
		return nil, err
	}
	return releases, nil
}

// GetByID returns a release. The caller must be a member of its workspace.
func (s *ReleaseService) GetByID(releaseID, userID uint) (*models.Release, error) {
	release, err := s.getRelease(releaseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(release.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}
	return release, nil
}

// Update applies a partial update. Manager only.
func (s *ReleaseService) Update(releaseID, userID uint, req *UpdateReleaseRequest) (*models.Release, error) {
	release, err := s.getRelease(releaseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.RequireAction(release.WorkspaceID, userID, ActionReleaseUpdate); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(release).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return release, nil
}

// Deploy marks a planned release as deployed. The caller must be a manager of
// the workspace and the creator of the release.
func (s *ReleaseService) Deploy(releaseID, userID uint) (*models.Release, error) {
	release, err := s.getRelease(releaseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.RequireAction(release.WorkspaceID, userID, ActionReleaseDeploy); err != nil {
		return nil, err
	}
	if release.CreatedBy != userID {
		return nil, response.NewForbidden(response.CodeUnauthorizedAction, "only the release creator may deploy it")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.ReleaseStatusDeployed,
		"deployed_at": now,
	}
	if err := s.db.Model(release).Updates(updates).Error; err != nil {
		return nil, err
	}
	return release, nil
}

// UpdateQAStatus sets the QA verdict. QA or manager only.
func (s *ReleaseService) UpdateQAStatus(releaseID, userID uint, req *UpdateQAStatusRequest) (*models.Release, error) {
	release, err := s.getRelease(releaseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.RequireAction(release.WorkspaceID, userID, ActionReleaseQAStatus); err != nil {
		return nil, err
	}

	if err := s.db.Model(release).Update("qa_status", req.QAStatus).Error; err != nil {
		return nil, err
	}
	return release, nil
}

// Delete removes a release. Manager only.
func (s *ReleaseService) Delete(releaseID, userID uint) error {
	release, err := s.getRelease(releaseID)
	if err != nil {
		return err
	}
	if _, err := s.perm.RequireAction(release.WorkspaceID, userID, ActionReleaseDelete); err != nil {
		return err
	}

	return s.db.Delete(release).Error
}
