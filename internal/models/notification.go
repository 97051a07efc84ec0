package models

import "time"

// Notification types
const (
	NotificationLike               = "like"
	NotificationComment            = "comment"
	NotificationConnectionAccepted = "connectionAccepted"
)

// Notification represents a persisted, user-visible fact about an event
// relevant to a recipient account
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	RecipientID   uint      `json:"recipient_id" gorm:"index"`
	Type          string    `json:"type" gorm:"size:30;index"`
	RelatedUserID *uint     `json:"related_user_id,omitempty" gorm:"index"`
	RelatedPostID *string   `json:"related_post_id,omitempty"` // Mongo post id as hex string
	Read          bool      `json:"read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

// EnrichedNotification includes the related user's public profile and a
// preview of the related post, as the notification page renders them.
type EnrichedNotification struct {
	Notification
	RelatedUser *PublicProfile `json:"relatedUser,omitempty"`
	Post        *PostPreview   `json:"post,omitempty"`
}
