package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/unlinked-app/backend/internal/models"
	"github.com/unlinked-app/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
}

// NewNotificationHandler creates a new NotificationHandler. postRepo may be
// nil; post previews are then omitted.
func NewNotificationHandler(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, postRepo repositories.PostRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notificationRepo,
		userRepository:         userRepo,
		postRepository:         postRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.DELETE("/notifications/:id", h.DeleteNotification)
}

// GetNotifications returns the caller's notifications, newest first, with
// the related user and a post preview attached
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user := currentUser(c)

	notifications, err := h.notificationRepository.GetByRecipientID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	enriched := make([]models.EnrichedNotification, 0, len(notifications))
	userCache := make(map[uint]models.PublicProfile)
	for _, n := range notifications {
		e := models.EnrichedNotification{Notification: n}
		if n.RelatedUserID != nil {
			if profile, ok := userCache[*n.RelatedUserID]; ok {
				e.RelatedUser = &profile
			} else if related, err := h.userRepository.GetUserByID(*n.RelatedUserID); err == nil {
				profile := related.ToPublic()
				userCache[*n.RelatedUserID] = profile
				e.RelatedUser = &profile
			}
		}
		if n.RelatedPostID != nil && h.postRepository != nil {
			if post, err := h.postRepository.GetPostByID(c.Request().Context(), *n.RelatedPostID); err == nil {
				e.Post = &models.PostPreview{
					ID:      post.ID.Hex(),
					Content: post.Content,
					Image:   post.Image,
				}
			}
		}
		enriched = append(enriched, e)
	}

	return c.JSON(http.StatusOK, enriched)
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user := currentUser(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.MarkAsRead(uint(notificationID), user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// DeleteNotification deletes one of the caller's notifications
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	user := currentUser(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.DeleteNotification(uint(notificationID), user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification deleted successfully!"})
}
