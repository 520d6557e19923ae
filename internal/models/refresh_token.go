package models

import "time"

// RefreshToken stores the hash of an issued refresh token. Tokens rotate on
// use; the old record is revoked and points at its replacement.
type RefreshToken struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"index;not null" json:"user_id"`
	TokenHash         string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt         time.Time  `gorm:"index" json:"expires_at"`
	RevokedAt         *time.Time `json:"revoked_at"`
	ReplacedByTokenID *uint      `json:"replaced_by_token_id"`
	CreatedByIP       string     `gorm:"size:50" json:"created_by_ip"`
	UserAgent         string     `gorm:"size:500" json:"user_agent"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
