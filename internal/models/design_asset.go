package models

import (
	"time"

	"gorm.io/gorm"
)

// DesignAsset is a link to an externally hosted design artifact (Figma file,
// mockup, export). File storage itself is external.
type DesignAsset struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WorkspaceID uint           `gorm:"index;not null" json:"workspace_id"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	URL         string         `gorm:"size:500;not null" json:"url"`
	Description string         `gorm:"size:500" json:"description"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (DesignAsset) TableName() string { return "design_assets" }
