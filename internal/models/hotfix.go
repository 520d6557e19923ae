package models

import (
	"time"

	"gorm.io/gorm"
)

// Hotfix is an urgent patch attached to a release.
type Hotfix struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkspaceID uint           `gorm:"index;not null" json:"workspace_id"`
	ReleaseID   uint           `gorm:"index;not null" json:"release_id"`
	Release     *Release       `gorm:"foreignKey:ReleaseID" json:"release,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;default:open" json:"status"` // open, in_progress, deployed
	AssignedTo  *uint          `gorm:"index" json:"assigned_to"`
	Assignee    *User          `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Hotfix) TableName() string { return "hotfixes" }
