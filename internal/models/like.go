package models

import "gorm.io/gorm"

// Like represents a like on a post
type Like struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	PostID     string `json:"post_id" gorm:"index"` // Mongo post id as hex string
	UserID     uint   `json:"user_id" gorm:"index"`
}
