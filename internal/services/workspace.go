package services

import (
	"errors"
	"time"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// WorkspaceService manages workspaces and their member list. All member
// mutations are manager-only.
type WorkspaceService struct {
	db   *gorm.DB
	perm *PermissionService
}

func NewWorkspaceService(db *gorm.DB) *WorkspaceService {
	return &WorkspaceService{db: db, perm: NewPermissionService(db)}
}

type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description *string `json:"description"`
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required"`
}

// Create creates a workspace and enrolls the creator as its first manager,
// both in one transaction.
func (s *WorkspaceService) Create(req *CreateWorkspaceRequest, userID uint) (*models.Workspace, error) {
	var count int64
	s.db.Model(&models.Workspace{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return nil, response.NewConflict(response.CodeWorkspaceExists, "a workspace with this name already exists")
	}

	workspace := models.Workspace{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		member := models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      userID,
			Role:        models.RoleManager,
			JoinedAt:    time.Now(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return &workspace, nil
}

// GetByID returns a workspace with its members. The caller must be a member.
func (s *WorkspaceService) GetByID(workspaceID, userID uint) (*models.Workspace, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var workspace models.Workspace
	if err := s.db.Preload("Members.User").First(&workspace, workspaceID).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// ListForUser returns the workspaces the user belongs to, derived from the
// membership table.
func (s *WorkspaceService) ListForUser(userID uint) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := s.db.
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ? AND workspace_members.deleted_at IS NULL", userID).
		Order("workspaces.created_at").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Update applies a partial update. Manager only.
func (s *WorkspaceService) Update(workspaceID, userID uint, req *UpdateWorkspaceRequest) (*models.Workspace, error) {
	if _, err := s.perm.RequireAction(workspaceID, userID, ActionWorkspaceUpdate); err != nil {
		return nil, err
	}

	var workspace models.Workspace
	if err := s.db.First(&workspace, workspaceID).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" && req.Name != workspace.Name {
		var count int64
		s.db.Model(&models.Workspace{}).Where("name = ? AND id <> ?", req.Name, workspaceID).Count(&count)
		if count > 0 {
			return nil, response.NewConflict(response.CodeWorkspaceExists, "a workspace with this name already exists")
		}
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&workspace).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &workspace, nil
}

// Delete removes a workspace and its membership rows. Manager only.
func (s *WorkspaceService) Delete(workspaceID, userID uint) error {
	if _, err := s.perm.RequireAction(workspaceID, userID, ActionWorkspaceDelete); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", workspaceID).Delete(&models.WorkspaceMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Workspace{}, workspaceID).Error
	})
}

// ListMembers returns the workspace's member list. The caller must be a member.
func (s *WorkspaceService) ListMembers(workspaceID, userID uint) ([]models.WorkspaceMember, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var members []models.WorkspaceMember
	err := s.db.Where("workspace_id = ?", workspaceID).
		Preload("User").
		Order("joined_at").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember directly enrolls a user. Manager only; the target must exist and
// must not already be a member.
func (s *WorkspaceService) AddMember(workspaceID, callerID uint, req *AddMemberRequest) (*models.WorkspaceMember, error) {
	if !models.ValidRole(req.Role) {
		return nil, response.NewBadRequest(response.CodeInvalidArgument, "invalid role: must be manager, developer, designer or qa")
	}

	if _, err := s.perm.RequireAction(workspaceID, callerID, ActionMemberAdd); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeUserNotFound, "user not found")
		}
		return nil, err
	}

	var count int64
	s.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, req.UserID).
		Count(&count)
	if count > 0 {
		return nil, response.NewConflict(response.CodeAlreadyMember, "user is already a member of this workspace")
	}

	member := models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      req.UserID,
		Role:        req.Role,
		JoinedAt:    time.Now(),
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&member, member.ID)
	return &member, nil
}

// UpdateMember changes a member's role. Manager only.
func (s *WorkspaceService) UpdateMember(workspaceID, callerID, targetUserID uint, req *UpdateMemberRequest) (*models.WorkspaceMember, error) {
	if !models.ValidRole(req.Role) {
		return nil, response.NewBadRequest(response.CodeInvalidArgument, "invalid role: must be manager, developer, designer or qa")
	}

	if _, err := s.perm.RequireAction(workspaceID, callerID, ActionMemberUpdate); err != nil {
		return nil, err
	}

	var member models.WorkspaceMember
	err := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, targetUserID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeUserNotMember, "user is not a member of this workspace")
		}
		return nil, err
	}

	member.Role = req.Role
	if err := s.db.Save(&member).Error; err != nil {
		return nil, err
	}

	s.db.Preload("User").First(&member, member.ID)
	return &member, nil
}

// RemoveMember deletes a membership row. Manager only.
func (s *WorkspaceService) RemoveMember(workspaceID, callerID, targetUserID uint) error {
	if _, err := s.perm.RequireAction(workspaceID, callerID, ActionMemberRemove); err != nil {
		return err
	}

	var member models.WorkspaceMember
	err := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, targetUserID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound(response.CodeUserNotMember, "user is not a member of this workspace")
		}
		return err
	}

	return s.db.Delete(&member).Error
}
