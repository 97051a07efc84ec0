package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User represents a registered account
type User struct {
	gorm.Model     `json:"-"`
	ID             uint     `json:"id" gorm:"primaryKey"`
	Name           string   `json:"name"`
	Username       string   `json:"username" gorm:"uniqueIndex"`
	Email          string   `json:"email" gorm:"uniqueIndex"`
	Password       string   `json:"-"` // bcrypt hash, never serialized
	FirebaseUID    string   `json:"firebase_uid,omitempty" gorm:"index"` // set for provider logins
	ProfilePicture string   `json:"profilePicture"`
	BannerImg      string   `json:"bannerImg"`
	Headline       string   `json:"headline"`
	About          string   `json:"about"`
	Location       string   `json:"location"`
	Skills         []string `json:"skills" gorm:"serializer:json"`

	// Confirmed peers. The join table always holds both directions of a
	// connection; rows are written and removed in mirrored pairs.
	Connections []*User      `json:"connections,omitempty" gorm:"many2many:user_connections;joinForeignKey:UserID;joinReferences:ConnectionID"`
	Experience  []Experience `json:"experience,omitempty"`
	Education   []Education  `json:"education,omitempty"`
}

// Experience is a work-history entry on a profile
type Experience struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"index"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education is a study-history entry on a profile
type Education struct {
	gorm.Model   `json:"-"`
	ID           uint   `json:"id" gorm:"primaryKey"`
	UserID       uint   `json:"user_id" gorm:"index"`
	School       string `json:"school"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    int    `json:"startYear"`
	EndYear      int    `json:"endYear"`
}

// PublicProfile is the subset of a user shown to other users
type PublicProfile struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	Headline       string `json:"headline"`
}

// ToPublic converts a user to its public projection
func (u *User) ToPublic() PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Headline:       u.Headline,
	}
}

// SignupRequest defines the request body for local signup
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=1,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for local login
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProviderLoginRequest defines the request body for Firebase provider login
type ProviderLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// UpdateProfileRequest defines the updatable profile fields. Image fields
// carry base64 payloads that are uploaded to the image host before storing.
type UpdateProfileRequest struct {
	Name           string       `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Username       string       `json:"username,omitempty" validate:"omitempty,min=1,max=30"`
	Headline       string       `json:"headline,omitempty"`
	About          string       `json:"about,omitempty"`
	Location       string       `json:"location,omitempty"`
	ProfilePicture string       `json:"profilePicture,omitempty"`
	BannerImg      string       `json:"bannerImg,omitempty"`
	Skills         []string     `json:"skills,omitempty"`
	Experience     []Experience `json:"experience,omitempty"`
	Education      []Education  `json:"education,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
