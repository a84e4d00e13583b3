package models

import (
	"time"

	"gorm.io/gorm"
)

// Auth providers a user account can originate from.
const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
	AuthProviderApple  = "apple"
)

// User represents a geugeu account. Code is the stable public identifier
// embedded in tokens and URLs; the numeric ID never leaves the process.
type User struct {
	ID              uint           `json:"-" gorm:"primaryKey"`
	Code            string         `json:"code" gorm:"uniqueIndex;type:varchar(36)" validate:"omitempty,uuid"`
	Email           string         `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password        string         `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, empty for OAuth accounts
	Nickname        string         `json:"nickname" gorm:"type:varchar(255)" validate:"max=255"`
	IsAdmin         bool           `json:"is_admin"`
	ProfileImageURL string         `json:"profile_image_url" gorm:"type:varchar(2083)"`
	AuthProvider    string         `json:"-" gorm:"type:varchar(16);default:local"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}
