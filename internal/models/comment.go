package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a threaded comment on a post or a drawing. Exactly one of
// PostID and DrawingID is set; replies point at their parent comment.
type Comment struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	Code      string         `json:"code" gorm:"uniqueIndex;type:varchar(36)"`
	AuthorID  uint           `json:"-" gorm:"index"`
	PostID    *uint          `json:"-" gorm:"index"`
	DrawingID *uint          `json:"-" gorm:"index"`
	ParentID  *uint          `json:"-" gorm:"index"`
	Content   string         `json:"content" gorm:"type:text" validate:"required"`
	Author    User           `json:"author" gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
