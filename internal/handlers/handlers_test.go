package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/unlinked-app/backend/internal/middleware"
	"github.com/unlinked-app/backend/internal/models"
	"github.com/unlinked-app/backend/internal/repositories"
	"github.com/unlinked-app/backend/validators"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// testApp assembles the HTTP surface over an in-memory database. Posts are
// left out because they live in MongoDB; the remaining routes cover the
// whole connection lifecycle.
type testApp struct {
	server *httptest.Server
	db     *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Experience{},
		&models.Education{},
		&models.ConnectionRequest{},
		&models.Notification{},
		&models.Comment{},
		&models.Like{},
	))

	userRepo := repositories.NewPostgresUserRepository(db)
	connectionRepo := repositories.NewPostgresConnectionRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	e := echo.New()
	e.Validator = validators.NewValidator()

	authHandler := NewAuthHandler(userRepo, nil, nil, testJWTSecret, "http://localhost:5173", false)
	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"))

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(testJWTSecret, userRepo))
	authHandler.RegisterSessionRoutes(api)

	NewUserHandler(userRepo, nil).RegisterUserRoutes(api)
	NewConnectionHandler(connectionRepo, userRepo, nil, nil, "http://localhost:5173").RegisterConnectionRoutes(api)
	NewNotificationHandler(notificationRepo, userRepo, nil).RegisterNotificationRoutes(api)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return &testApp{server: server, db: db}
}

// client is an HTTP client with its own cookie jar, standing in for one
// logged-in browser session
type client struct {
	t    *testing.T
	http *http.Client
	base string
}

func (a *testApp) newClient(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, http: &http.Client{Jar: jar}, base: a.server.URL}
}

func (c *client) do(method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		// list responses are decoded by the caller via doList
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func (c *client) doList(method, path string) (*http.Response, []map[string]interface{}) {
	c.t.Helper()

	req, err := http.NewRequest(method, c.base+path, nil)
	require.NoError(c.t, err)
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var decoded []map[string]interface{}
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// signup registers an account and leaves the session cookie in the jar
func (c *client) signup(name, username string) {
	c.t.Helper()
	resp, _ := c.do(http.MethodPost, "/api/v1/auth/signup", models.SignupRequest{
		Name:     name,
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
}

func (a *testApp) userID(t *testing.T, username string) uint {
	t.Helper()
	var user models.User
	require.NoError(t, a.db.Where("username = ?", username).First(&user).Error)
	return user.ID
}

func (a *testApp) requestID(t *testing.T, senderID, receiverID uint) uint {
	t.Helper()
	var request models.ConnectionRequest
	require.NoError(t, a.db.
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, receiverID, models.RequestPending).
		First(&request).Error)
	return request.ID
}

func pathID(id uint) string {
	return fmt.Sprintf("%d", id)
}
