package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/unlinked-app/backend/internal/metrics"
	"github.com/unlinked-app/backend/internal/models"
	"github.com/unlinked-app/backend/internal/repositories"
	"github.com/unlinked-app/backend/pkg/mailer"
	"gorm.io/gorm"
)

// ConnectionHandler handles the connection request lifecycle
type ConnectionHandler struct {
	connectionRepository repositories.ConnectionRepository
	userRepository       repositories.UserRepository
	mail                 mailer.Mailer
	metrics              *metrics.Metrics
	clientURL            string
}

// NewConnectionHandler creates a new ConnectionHandler. mail and m may be
// nil.
func NewConnectionHandler(connectionRepo repositories.ConnectionRepository, userRepo repositories.UserRepository, mail mailer.Mailer, m *metrics.Metrics, clientURL string) *ConnectionHandler {
	return &ConnectionHandler{
		connectionRepository: connectionRepo,
		userRepository:       userRepo,
		mail:                 mail,
		metrics:              m,
		clientURL:            clientURL,
	}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.POST("/connections/request/:userId", h.SendRequest)
	g.PUT("/connections/accept/:requestId", h.AcceptRequest)
	g.PUT("/connections/reject/:requestId", h.RejectRequest)
	g.GET("/connections/requests", h.GetRequests)
	g.GET("/connections", h.GetConnections)
	g.DELETE("/connections/:userId", h.RemoveConnection)
	g.GET("/connections/status/:userId", h.GetStatus)
}

// SendRequest sends a connection request to the user in the path
func (h *ConnectionHandler) SendRequest(c echo.Context) error {
	user := currentUser(c)

	receiverID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.userRepository.GetUserByID(uint(receiverID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "No user found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	_, err = h.connectionRepository.SendRequest(user.ID, uint(receiverID))
	switch err {
	case nil:
	case repositories.ErrSelfRequest:
		return echo.NewHTTPError(http.StatusBadRequest, "You can't send request to yourself!")
	case repositories.ErrAlreadyConnected:
		return echo.NewHTTPError(http.StatusBadRequest, "You are already connected!")
	case repositories.ErrDuplicateRequest:
		return echo.NewHTTPError(http.StatusBadRequest, "A connection request already exists!")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if h.metrics != nil {
		h.metrics.ConnectionRequests.WithLabelValues(c.Path()).Inc()
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Connection request sent successfully"})
}

// AcceptRequest accepts a pending request addressed to the caller. The
// accepted email is dispatched after the transaction commits and never
// affects the response.
func (h *ConnectionHandler) AcceptRequest(c echo.Context) error {
	user := currentUser(c)

	requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	request, err := h.connectionRepository.GetRequestByID(uint(requestID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Connection request not found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if request.ReceiverID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to accept this request")
	}
	if request.Status != models.RequestPending {
		return echo.NewHTTPError(http.StatusBadRequest, "This request has already been processed")
	}

	if err := h.connectionRepository.AcceptRequest(uint(requestID)); err != nil {
		if err == repositories.ErrAlreadyProcessed {
			return echo.NewHTTPError(http.StatusBadRequest, "This request has already been processed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if h.metrics != nil {
		h.metrics.ConnectionAccepts.WithLabelValues(c.Path()).Inc()
	}

	if h.mail != nil && request.Sender != nil && request.Receiver != nil {
		profileURL := h.clientURL + "/profile/" + request.Receiver.Username
		go func(email, senderName, accepterName, profileURL string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.mail.SendConnectionAcceptedEmail(ctx, email, senderName, accepterName, profileURL); err != nil {
				logrus.WithError(err).Error("Error while sending notification to connected user")
			}
		}(request.Sender.Email, request.Sender.Name, request.Receiver.Name, profileURL)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Connection accepted successfully"})
}

// RejectRequest rejects a pending request addressed to the caller
func (h *ConnectionHandler) RejectRequest(c echo.Context) error {
	user := currentUser(c)

	requestID, err := strconv.ParseUint(c.Param("requestId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request ID")
	}

	request, err := h.connectionRepository.GetRequestByID(uint(requestID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Connection request not found!")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	if request.ReceiverID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not authorized to reject this request")
	}
	if request.Status != models.RequestPending {
		return echo.NewHTTPError(http.StatusBadRequest, "This request has already been processed")
	}

	if err := h.connectionRepository.RejectRequest(uint(requestID)); err != nil {
		if err == repositories.ErrAlreadyProcessed {
			return echo.NewHTTPError(http.StatusBadRequest, "This request has already been processed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Connection request rejected"})
}

// GetRequests lists pending requests addressed to the caller
func (h *ConnectionHandler) GetRequests(c echo.Context) error {
	user := currentUser(c)

	requests, err := h.connectionRepository.GetPendingRequests(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, requests)
}

// GetConnections lists the caller's confirmed connections
func (h *ConnectionHandler) GetConnections(c echo.Context) error {
	user := currentUser(c)

	connections, err := h.connectionRepository.GetConnections(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}

	profiles := make([]models.PublicProfile, 0, len(connections))
	for i := range connections {
		profiles = append(profiles, connections[i].ToPublic())
	}
	return c.JSON(http.StatusOK, profiles)
}

// RemoveConnection removes the connection between the caller and the user in
// the path
func (h *ConnectionHandler) RemoveConnection(c echo.Context) error {
	user := currentUser(c)

	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.connectionRepository.RemoveConnection(user.ID, uint(otherID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Connection removed successfully"})
}

// GetStatus reports the relationship between the caller and the user in the
// path
func (h *ConnectionHandler) GetStatus(c echo.Context) error {
	user := currentUser(c)

	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	status, err := h.connectionRepository.GetStatus(user.ID, uint(otherID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, status)
}
