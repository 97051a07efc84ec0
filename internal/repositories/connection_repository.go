package repositories

import (
	"github.com/unlinked-app/backend/internal/models"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for the connection request
// lifecycle and the adjacency list it maintains
type ConnectionRepository interface {
	SendRequest(senderID, receiverID uint) (*models.ConnectionRequest, error)
	GetRequestByID(id uint) (*models.ConnectionRequest, error)
	AcceptRequest(requestID uint) error
	RejectRequest(requestID uint) error
	GetPendingRequests(receiverID uint) ([]models.PendingRequest, error)
	GetConnections(userID uint) ([]models.User, error)
	IsConnected(userID, otherID uint) (bool, error)
	RemoveConnection(userID, otherID uint) error
	GetStatus(userID, otherID uint) (*models.ConnectionStatus, error)
}

// PostgresConnectionRepository implements ConnectionRepository on GORM
type PostgresConnectionRepository struct {
	db *gorm.DB
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

// SendRequest creates a pending connection request after the self,
// already-connected and duplicate checks. The duplicate check is keyed on
// the unordered pair: a pending request in either direction blocks a new one.
func (r *PostgresConnectionRepository) SendRequest(senderID, receiverID uint) (*models.ConnectionRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfRequest
	}

	connected, err := r.IsConnected(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, ErrAlreadyConnected
	}

	var count int64
	err = r.db.Model(&models.ConnectionRequest{}).
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			senderID, receiverID, receiverID, senderID, models.RequestPending).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateRequest
	}

	req := &models.ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.RequestPending,
	}
	if err := r.db.Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// GetRequestByID retrieves a connection request with sender and receiver
func (r *PostgresConnectionRepository) GetRequestByID(id uint) (*models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	if err := r.db.Preload("Sender").Preload("Receiver").First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// AcceptRequest flips the request to accepted, writes both directions of the
// adjacency and inserts the connectionAccepted notification for the sender,
// all in one transaction. The status flip is conditional on the row still
// being pending, so a concurrent accept loses cleanly with
// ErrAlreadyProcessed instead of double-writing.
func (r *PostgresConnectionRepository) AcceptRequest(requestID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var req models.ConnectionRequest
		if err := tx.First(&req, requestID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.ConnectionRequest{}).
			Where("id = ? AND status = ?", requestID, models.RequestPending).
			Update("status", models.RequestAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		if err := linkUsers(tx, req.SenderID, req.ReceiverID); err != nil {
			return err
		}

		notification := &models.Notification{
			RecipientID:   req.SenderID,
			Type:          models.NotificationConnectionAccepted,
			RelatedUserID: &req.ReceiverID,
		}
		return tx.Create(notification).Error
	})
}

// RejectRequest flips the request to rejected. No adjacency or notification
// changes.
func (r *PostgresConnectionRepository) RejectRequest(requestID uint) error {
	res := r.db.Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestPending).
		Update("status", models.RequestRejected)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyProcessed
	}
	return nil
}

// GetPendingRequests retrieves all pending requests addressed to a user,
// enriched with the sender's public profile
func (r *PostgresConnectionRepository) GetPendingRequests(receiverID uint) ([]models.PendingRequest, error) {
	var requests []models.ConnectionRequest
	err := r.db.Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, models.RequestPending).
		Order("id").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	pending := make([]models.PendingRequest, 0, len(requests))
	for _, req := range requests {
		p := models.PendingRequest{ID: req.ID}
		if req.Sender != nil {
			p.Sender = req.Sender.ToPublic()
		}
		pending = append(pending, p)
	}
	return pending, nil
}

// GetConnections retrieves a user's confirmed peers
func (r *PostgresConnectionRepository) GetConnections(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN user_connections uc ON uc.connection_id = users.id").
		Where("uc.user_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// IsConnected reports whether the adjacency holds a row from userID to
// otherID. The pair is always written symmetrically, so one direction is
// enough to check.
func (r *PostgresConnectionRepository) IsConnected(userID, otherID uint) (bool, error) {
	var count int64
	err := r.db.Table("user_connections").
		Where("user_id = ? AND connection_id = ?", userID, otherID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RemoveConnection deletes both directions of the adjacency in one
// transaction, mirroring the symmetric insert on accept
func (r *PostgresConnectionRepository) RemoveConnection(userID, otherID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return unlinkUsers(tx, userID, otherID)
	})
}

// GetStatus computes the relationship between two users. Confirmed
// connections take priority over any pending request for display purposes.
func (r *PostgresConnectionRepository) GetStatus(userID, otherID uint) (*models.ConnectionStatus, error) {
	connected, err := r.IsConnected(userID, otherID)
	if err != nil {
		return nil, err
	}
	if connected {
		return &models.ConnectionStatus{Status: models.StatusConnected}, nil
	}

	var req models.ConnectionRequest
	err = r.db.
		Where("((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND status = ?",
			userID, otherID, otherID, userID, models.RequestPending).
		First(&req).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.ConnectionStatus{Status: models.StatusNotConnected}, nil
		}
		return nil, err
	}

	if req.SenderID == userID {
		return &models.ConnectionStatus{Status: models.StatusPending}, nil
	}
	return &models.ConnectionStatus{Status: models.StatusReceived, RequestID: req.ID}, nil
}

// linkUsers writes the mirrored adjacency pair for a new connection
func linkUsers(tx *gorm.DB, a, b uint) error {
	return tx.Exec(
		"INSERT INTO user_connections (user_id, connection_id) VALUES (?, ?), (?, ?)",
		a, b, b, a,
	).Error
}

// unlinkUsers removes both directions of the adjacency pair
func unlinkUsers(tx *gorm.DB, a, b uint) error {
	return tx.Exec(
		"DELETE FROM user_connections WHERE (user_id = ? AND connection_id = ?) OR (user_id = ? AND connection_id = ?)",
		a, b, b, a,
	).Error
}
