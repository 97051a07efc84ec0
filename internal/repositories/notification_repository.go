package repositories

import (
	"github.com/unlinked-app/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID uint) ([]models.Notification, error)
	MarkAsRead(notificationID, recipientID uint) error
	DeleteNotification(notificationID, recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed
// by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkAsRead sets the read flag. Scoped to the recipient so a user cannot
// touch someone else's notification.
func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("read", true).Error
}

func (r *postgresNotificationRepository) DeleteNotification(notificationID, recipientID uint) error {
	return r.db.
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Delete(&models.Notification{}).Error
}
