package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account. Workspace membership is not stored on the user;
// it is derived from the workspace_members table.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email       string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password    string         `gorm:"size:255" json:"-"` // bcrypt hash, empty for LDAP users
	DisplayName string         `gorm:"size:100" json:"display_name"`
	AuthType    string         `gorm:"size:20;default:local" json:"auth_type"` // local, ldap
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLogin   *time.Time     `json:"last_login"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
