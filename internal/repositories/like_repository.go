package repositories

import (
	"github.com/unlinked-app/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	// ToggleLike likes the post if the user has not liked it, unlikes it
	// otherwise. Returns true if the post is liked after the call.
	ToggleLike(postID string, userID uint) (bool, error)
	GetLikesByPostID(postID string) ([]models.Like, error)
	DeleteLikesByPostID(postID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike flips a user's like on a post inside one transaction
func (r *PostgresLikeRepository) ToggleLike(postID string, userID uint) (bool, error) {
	liked := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		if err == nil {
			return tx.Unscoped().Delete(&existing).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		liked = true
		return tx.Create(&models.Like{PostID: postID, UserID: userID}).Error
	})
	return liked, err
}

// GetLikesByPostID retrieves all likes on a post
func (r *PostgresLikeRepository) GetLikesByPostID(postID string) ([]models.Like, error) {
	var likes []models.Like
	err := r.db.Where("post_id = ?", postID).Find(&likes).Error
	return likes, err
}

// DeleteLikesByPostID removes all likes on a post, used when the post itself
// is deleted
func (r *PostgresLikeRepository) DeleteLikesByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Unscoped().Delete(&models.Like{}).Error
}
