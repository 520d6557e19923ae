package models

import (
	"time"

	"gorm.io/gorm"
)

// Bug is a defect reported against a release.
type Bug struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkspaceID uint           `gorm:"index;not null" json:"workspace_id"`
	ReleaseID   uint           `gorm:"index;not null" json:"release_id"`
	Release     *Release       `gorm:"foreignKey:ReleaseID" json:"release,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Severity    string         `gorm:"size:20;default:medium" json:"severity"` // low, medium, high, critical
	Status      string         `gorm:"size:20;default:open" json:"status"`     // open, in_progress, resolved, closed
	AssignedTo  *uint          `gorm:"index" json:"assigned_to"`
	Assignee    *User          `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Bug) TableName() string { return "bugs" }
