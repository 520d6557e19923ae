package models

import (
	"time"

	"gorm.io/gorm"
)

// Workspace is the tenant container scoping members, releases, bugs and tasks.
type Workspace struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string            `gorm:"size:500" json:"description"`
	CreatedBy   uint              `gorm:"not null" json:"created_by"`
	Members     []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Workspace) TableName() string { return "workspaces" }
