package repositories

import (
	"github.com/unlinked-app/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for account data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserWithConnections(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	GetSuggestedUsers(userID uint, limit int) ([]models.PublicProfile, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new account
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves an account by ID
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserWithConnections retrieves an account with its confirmed peers,
// experience and education preloaded
func (r *PostgresUserRepository) GetUserWithConnections(id uint) (*models.User, error) {
	var user models.User
	err := r.db.
		Preload("Connections").
		Preload("Experience").
		Preload("Education").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves an account by its unique username
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves an account by its unique email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves an account by its provider UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser persists changes to an account, replacing experience and
// education child records when present
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if user.Experience != nil {
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
		}
		if user.Education != nil {
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(user).Error
	})
}

// GetSuggestedUsers returns accounts the user is not connected to, excluding
// the user itself, limited to a handful for the sidebar
func (r *PostgresUserRepository) GetSuggestedUsers(userID uint, limit int) ([]models.PublicProfile, error) {
	var users []models.User
	err := r.db.
		Where("id <> ?", userID).
		Where("id NOT IN (SELECT connection_id FROM user_connections WHERE user_id = ?)", userID).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToPublic())
	}
	return profiles, nil
}
