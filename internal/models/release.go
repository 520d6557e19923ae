package models

import (
	"time"

	"gorm.io/gorm"
)

// Release lifecycle.
const (
	ReleaseStatusPlanned  = "planned"
	ReleaseStatusDeployed = "deployed"

	QAStatusPending = "pending"
	QAStatusPassed  = "passed"
	QAStatusFailed  = "failed"
)

// Release is a planned ship of a workspace. Bugs and hotfixes attach to it.
type Release struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkspaceID uint           `gorm:"index;not null" json:"workspace_id"`
	Workspace   *Workspace     `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;default:planned" json:"status"`
	QAStatus    string         `gorm:"size:20;default:pending" json:"qa_status"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	DeployedAt  *time.Time     `json:"deployed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Release) TableName() string { return "releases" }
