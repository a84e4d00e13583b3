package models

import (
	"time"

	"gorm.io/gorm"
)

// Interest marks that a user is interested in a post. Toggling off soft
// deletes the row, so re-toggling creates a fresh one.
type Interest struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	UserID    uint           `json:"-" gorm:"index:idx_interest_user_post"`
	PostID    uint           `json:"-" gorm:"index:idx_interest_user_post"`
	User      User           `json:"user" gorm:"foreignKey:UserID"`
	Post      Post           `json:"post" gorm:"foreignKey:PostID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
