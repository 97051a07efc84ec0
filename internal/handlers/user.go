package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/unlinked-app/backend/internal/models"
	"github.com/unlinked-app/backend/internal/repositories"
	"github.com/unlinked-app/backend/pkg/cloudinary"
	"gorm.io/gorm"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	uploader       cloudinary.Uploader
}

// NewUserHandler creates a new UserHandler. uploader may be nil when image
// hosting is not configured.
func NewUserHandler(userRepo repositories.UserRepository, uploader cloudinary.Uploader) *UserHandler {
	return &UserHandler{userRepository: userRepo, uploader: uploader}
}

// RegisterUserRoutes registers user profile routes. Suggestions must come
// before the username route so it is not captured as a username.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/suggestions", h.GetSuggestedConnections)
	g.PUT("/users/profile", h.UpdateProfile)
	g.GET("/users/:username", h.GetPublicProfile)
}

// GetSuggestedConnections returns a few accounts the caller is not connected
// to
func (h *UserHandler) GetSuggestedConnections(c echo.Context) error {
	user := currentUser(c)

	suggestions, err := h.userRepository.GetSuggestedUsers(user.ID, 3)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, suggestions)
}

// GetPublicProfile returns another user's profile by username
func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	username := c.Param("username")

	user, err := h.userRepository.GetUserByUsername(username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "No user found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the caller's allowed profile fields, uploading image
// payloads to the image host first. Upload failures propagate as request
// failures.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := currentUser(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Headline != "" {
		user.Headline = req.Headline
	}
	if req.About != "" {
		user.About = req.About
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.Experience != nil {
		user.Experience = req.Experience
		for i := range user.Experience {
			user.Experience[i].UserID = user.ID
		}
	}
	if req.Education != nil {
		user.Education = req.Education
		for i := range user.Education {
			user.Education[i].UserID = user.ID
		}
	}

	if req.ProfilePicture != "" {
		if h.uploader == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Image hosting is not configured")
		}
		url, err := h.uploader.Upload(c.Request().Context(), req.ProfilePicture)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		user.ProfilePicture = url
	}
	if req.BannerImg != "" {
		if h.uploader == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Image hosting is not configured")
		}
		url, err := h.uploader.Upload(c.Request().Context(), req.BannerImg)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
		}
		user.BannerImg = url
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, user)
}
