package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a drawing request published by a user.
type Post struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	Code      string         `json:"code" gorm:"uniqueIndex;type:varchar(36)" validate:"omitempty,uuid"`
	AuthorID  uint           `json:"-" gorm:"index"`
	Title     string         `json:"title" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Content   string         `json:"content" gorm:"type:text" validate:"required"`
	Author    User           `json:"author" gorm:"foreignKey:AuthorID"`
	Images    []Image        `json:"images" gorm:"foreignKey:PostID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
