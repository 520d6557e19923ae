package models

import (
	"time"

	"gorm.io/gorm"
)

// Invite lifecycle states. An invite transitions from pending to exactly one of
// accepted or declined and is terminal thereafter.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

// Invite is a pending offer of workspace membership with a role, addressed to a
// specific user. At most one pending invite exists per (user, workspace) pair.
type Invite struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"uniqueIndex;size:36;not null" json:"code"` // opaque reference used in notification links
	WorkspaceID uint           `gorm:"index;not null" json:"workspace_id"`
	Workspace   *Workspace     `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	UserID      uint           `gorm:"index;not null" json:"user_id"` // invited user
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	InvitedBy   uint           `gorm:"not null" json:"invited_by"`
	Inviter     *User          `gorm:"foreignKey:InvitedBy" json:"inviter,omitempty"`
	Role        string         `gorm:"size:50;not null" json:"role"` // role granted on acceptance
	Status      string         `gorm:"size:20;default:pending;index" json:"status"`
	SentAt      time.Time      `json:"sent_at"`
	AcceptedAt  *time.Time     `json:"accepted_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Invite) TableName() string { return "invites" }
