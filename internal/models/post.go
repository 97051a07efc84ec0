package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a feed post stored in MongoDB
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// PostPreview is the slice of a post embedded in notifications
type PostPreview struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

// EnrichedPost includes the author's public profile and comments
type EnrichedPost struct {
	Post
	Author   PublicProfile     `json:"author"`
	Comments []EnrichedComment `json:"comments,omitempty"`
}

// CreatePostRequest defines the request body for creating a post. Image is
// an optional base64 data URL uploaded to the image host before storing.
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=3000"`
	Image   string `json:"image,omitempty"`
}
