package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/logger"
	"github.com/teamflow/backend/pkg/response"
	"gorm.io/gorm"
)

// InviteService implements the invite lifecycle: a manager creates a pending
// invite, the target user accepts or declines exactly once, and acceptance
// inserts the membership row in the same transaction.
type InviteService struct {
	db    *gorm.DB
	perm  *PermissionService
	queue TaskQueue
}

func NewInviteService(db *gorm.DB, queue TaskQueue) *InviteService {
	return &InviteService{
		db:    db,
		perm:  NewPermissionService(db),
		queue: queue,
	}
}

type CreateInviteRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Role            string `json:"role" binding:"required"`
}

// Create creates a pending invite. The caller must hold the manager role in
// the workspace; the target must exist, must not already be a member, and must
// not already have a pending invite for this workspace.
func (s *InviteService) Create(workspaceID, invitedBy uint, req *CreateInviteRequest) (*models.Invite, error) {
	if !models.ValidRole(req.Role) {
		return nil, response.NewBadRequest(response.CodeInvalidArgument, "invalid role: must be manager, developer, designer or qa")
	}

	inviter, err := s.perm.GetMembership(workspaceID, invitedBy)
	if err != nil {
		return nil, err
	}
	if !CanPerform(ActionInviteCreate, inviter.Role) {
		return nil, response.NewForbidden(response.CodeUnauthorizedAction, "only managers may invite users")
	}

	var target models.User
	err = s.db.Where("username = ? OR email = ?", req.UsernameOrEmail, req.UsernameOrEmail).First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeUserNotFound, "user not found")
		}
		return nil, err
	}

	var memberCount int64
	s.db.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, target.ID).
		Count(&memberCount)
	if memberCount > 0 {
		return nil, response.NewConflict(response.CodeAlreadyMember, "user is already a member of this workspace")
	}

	var pendingCount int64
	s.db.Model(&models.Invite{}).
		Where("workspace_id = ? AND user_id = ? AND status = ?", workspaceID, target.ID, models.InviteStatusPending).
		Count(&pendingCount)
	if pendingCount > 0 {
		return nil, response.NewConflict(response.CodeDuplicateInvite, "a pending invite already exists for this user")
	}

	invite := models.Invite{
		Code:        uuid.NewString(),
		WorkspaceID: workspaceID,
		UserID:      target.ID,
		InvitedBy:   invitedBy,
		Role:        req.Role,
		Status:      models.InviteStatusPending,
		SentAt:      time.Now(),
	}
	if err := s.db.Create(&invite).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Workspace").Preload("User").Preload("Inviter").First(&invite, invite.ID)

	// Notification delivery is best effort and never blocks invite creation.
	if s.queue != nil {
		task := &InviteTask{
			InviteID:      invite.ID,
			InviteCode:    invite.Code,
			WorkspaceName: invite.Workspace.Name,
			InviteeEmail:  target.Email,
			InviteeName:   target.DisplayName,
			Role:          invite.Role,
		}
		if invite.Inviter != nil {
			task.InviterName = invite.Inviter.DisplayName
		}
		if err := s.queue.Enqueue(task); err != nil {
			logger.Warn().Err(err).Uint("invite_id", invite.ID).Msg("failed to enqueue invite notification")
		}
	}

	return &invite, nil
}

// Respond accepts or declines a pending invite. Only the invited user may
// respond, and only once: a resolved invite is terminal. Acceptance updates the
// invite and inserts the membership row in a single transaction, so a crash
// cannot leave an accepted invite without its membership.
func (s *InviteService) Respond(inviteID, userID uint, accept bool) (*models.Invite, error) {
	var invite models.Invite
	if err := s.db.First(&invite, inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(response.CodeInviteNotFound, "invite not found")
		}
		return nil, err
	}

	if invite.UserID != userID {
		return nil, response.NewForbidden(response.CodeUnauthorizedAction, "only the invited user may respond to this invite")
	}

	if invite.Status != models.InviteStatusPending {
		return nil, response.NewConflict(response.CodeInviteResponded, "invite has already been responded to")
	}

	now := time.Now()

	if !accept {
		invite.Status = models.InviteStatusDeclined
		if err := s.db.Save(&invite).Error; err != nil {
			return nil, err
		}
		return &invite, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		invite.Status = models.InviteStatusAccepted
		invite.AcceptedAt = &now
		if err := tx.Save(&invite).Error; err != nil {
			return err
		}

		// Guarded insert: a concurrent accept for the same pair must not
		// produce a second membership row.
		var existing models.WorkspaceMember
		err := tx.Where("workspace_id = ? AND user_id = ?", invite.WorkspaceID, invite.UserID).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		member := models.WorkspaceMember{
			WorkspaceID: invite.WorkspaceID,
			UserID:      invite.UserID,
			Role:        invite.Role,
			JoinedAt:    now,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return &invite, nil
}

// Delete removes an invite regardless of its status. The caller must hold the
// manager role in the invite's own workspace.
func (s *InviteService) Delete(inviteID, managerID uint) error {
	var invite models.Invite
	if err := s.db.First(&invite, inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound(response.CodeInviteNotFound, "invite not found")
		}
		return err
	}

	manager, err := s.perm.GetMembership(invite.WorkspaceID, managerID)
	if err != nil {
		return err
	}
	if !CanPerform(ActionInviteDelete, manager.Role) {
		return response.NewForbidden(response.CodeUnauthorizedAction, "only managers may delete invites")
	}

	return s.db.Delete(&invite).Error
}

// ListForUser returns all invites addressed to the user, enriched with the
// workspace and inviter for presentation.
func (s *InviteService) ListForUser(userID uint) ([]models.Invite, error) {
	var invites []models.Invite
	err := s.db.Where("user_id = ?", userID).
		Preload("Workspace").
		Preload("Inviter").
		Order("sent_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// ListForWorkspace returns all invites sent for the workspace, enriched with
// the invitee for presentation. The caller must be a member.
func (s *InviteService) ListForWorkspace(workspaceID, userID uint) ([]models.Invite, error) {
	if _, err := s.perm.Require(workspaceID, userID, PermissionMember); err != nil {
		return nil, err
	}

	var invites []models.Invite
	err := s.db.Where("workspace_id = ?", workspaceID).
		Preload("User").
		Preload("Inviter").
		Order("sent_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}
