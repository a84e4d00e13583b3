package models

import (
	"time"

	"gorm.io/gorm"
)

// Drawing is a drawn response to a post. A post carries at most one live
// drawing at a time.
type Drawing struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	Code      string         `json:"code" gorm:"uniqueIndex;type:varchar(36)" validate:"omitempty,uuid"`
	PostID    uint           `json:"-" gorm:"index"`
	AuthorID  uint           `json:"-" gorm:"index"`
	Content   string         `json:"content" gorm:"type:text" validate:"required"`
	Post      Post           `json:"-" gorm:"foreignKey:PostID"`
	Author    User           `json:"author" gorm:"foreignKey:AuthorID"`
	Images    []Image        `json:"images" gorm:"foreignKey:DrawingID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
