package models

import (
	"time"

	"gorm.io/gorm"
)

// Workspace roles. Flat enumeration, no hierarchy: a manager is not implicitly
// treated as qa and vice versa.
const (
	RoleManager   = "manager"
	RoleDeveloper = "developer"
	RoleDesigner  = "designer"
	RoleQA        = "qa"
)

// ValidRole reports whether role is one of the known workspace roles.
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleDeveloper, RoleDesigner, RoleQA:
		return true
	}
	return false
}

// WorkspaceMember is a user's membership and role within a workspace. It is the
// single source of truth for membership: both "is this user a member" and
// "which workspaces does this user belong to" derive from this table.
type WorkspaceMember struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkspaceID uint           `gorm:"uniqueIndex:idx_workspace_user;not null" json:"workspace_id"`
	Workspace   *Workspace     `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	UserID      uint           `gorm:"uniqueIndex:idx_workspace_user;not null" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role        string         `gorm:"size:50;not null" json:"role"`
	JoinedAt    time.Time      `json:"joined_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkspaceMember) TableName() string { return "workspace_members" }
