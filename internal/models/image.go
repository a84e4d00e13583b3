package models

import (
	"time"

	"gorm.io/gorm"
)

// Image is an uploaded file attached to either a post or a drawing. The URL
// points at the object stored in S3.
type Image struct {
	ID        uint           `json:"-" gorm:"primaryKey"`
	Code      string         `json:"code" gorm:"uniqueIndex;type:varchar(36)"`
	PostID    *uint          `json:"-" gorm:"index"`
	DrawingID *uint          `json:"-" gorm:"index"`
	URL       string         `json:"url" gorm:"type:varchar(2083)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
