package services

import (
	"errors"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// BugService manages bugs. Any member may report a bug; updates are allowed
// for qa, managers, or the assigned user; deletion is qa/manager only.
type BugService struct {
	db   *gorm.DB
	perm *PermissionService
}

func NewBugService(db *gorm.DB) *BugService {
	return &BugService{db: db, perm: NewPermissionService(db)}
}

type CreateBugRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	AssignedTo  *uint  `json:"assigned_to"`
}

type UpdateBugRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Severity    string  `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	Status      string  `json:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	AssignedTo  *uint   `json:"assigned_to"`
}

func (s *BugService) getBug(bugID uint) (*models.Bug, error) {
	var bug models.Bug
	if err := s.db.First(&bug, bugID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeBugNotFound, "bug not found")
		}
		return nil, err
	}
	return &bug, nil
}

// Create reports a bug against a release. Member only.
func (s *BugService) Create(releaseID, userID uint, req *CreateBugRequest) (*models.Bug, error) {
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

	if req.Severity == "" {
		req.Severity = "medium"
	}

	bug := models.Bug{
		WorkspaceID: release.WorkspaceID,
		ReleaseID:   releaseID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      "open",
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&bug).Error; err != nil {
		return nil, err
	}
	return &bug, nil
}

// ListForRelease returns a release's bugs. Member only.
func (s *BugService) ListForRelease(releaseID, userID uint) ([]models.Bug, error) {
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

	var bugs []models.Bug
	err := s.db.Where("release_id = ?", releaseID).
		Preload("Assignee").
		Order("created_at DESC").
		Find(&bugs).Error
	if err != nil {
		return nil, err
	}
	return bugs, nil
}

// GetByID returns a bug. The caller must be a member of its workspace.
func (s *BugService) GetByID(bugID, userID uint) (*models.Bug, error) {
	bug, err := s.getBug(bugID)
	if err != nil {
		return nil, err
	}
	if _, err := s.perm.Require(bug.WorkspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}
	return bug, nil
}

// Update applies a partial update. Allowed for qa, managers, or the bug's
// assigned user; membership is checked before either rule.
func (s *BugService) Update(bugID, userID uint, req *UpdateBugRequest) (*models.Bug, error) {
	bug, err := s.getBug(bugID)
	if err != nil {
		return nil, err
	}

	member, err := s.perm.GetMembership(bug.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}

	assigned := bug.AssignedTo != nil && *bug.AssignedTo == userID
	if !assigned && !CanPerform(ActionBugUpdate, member.Role) {
		return nil, response.NewForbidden(response.CodeUnauthorizedAction, "only qa, managers or the assigned user may update this bug")
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Severity != "" {
		updates["severity"] = req.Severity
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = req.AssignedTo
	}

	if len(updates) > 0 {
		if err := s.db.Model(bug).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return bug, nil
}

// Delete removes a bug. QA or manager only; being assigned does not qualify.
func (s *BugService) Delete(bugID, userID uint) error {
	bug, err := s.getBug(bugID)
	if err != nil {
		return err
	}

	member, err := s.perm.GetMembership(bug.WorkspaceID, userID)
	if err != nil {
		return err
	}
	if !CanPerform(ActionBugDelete, member.Role) {
		return response.NewForbidden(response.CodeUnauthorizedAction, "only qa or managers may delete bugs")
	}

	return s.db.Delete(bug).Error
}
