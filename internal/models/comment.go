package models

import "gorm.io/gorm"

// Comment represents a comment on a post
type Comment struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	PostID     string `json:"post_id" gorm:"index"` // Mongo post id as hex string
	UserID     uint   `json:"user_id" gorm:"index"`
	Content    string `json:"content"`
}

// EnrichedComment includes the commenter's public profile
type EnrichedComment struct {
	Comment
	User PublicProfile `json:"user"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
